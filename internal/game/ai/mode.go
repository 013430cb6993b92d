package ai

const (
	// StreakCap is the streak length past which the streak is cleared.
	StreakCap = 10
	// RetreatStreakLimit bounds how many consecutive streak turns may be spent
	// retreating before the machine re-evaluates other modes.
	RetreatStreakLimit = 3
)

// Thresholds configure the mode state machine.
type Thresholds struct {
	LowHealth float64
	LowEnergy float64
}

// Next selects the mode for this turn and advances st.ModeStreak.
//
// Rules, first match wins:
//  1. a streak above StreakCap is reset to 0 before anything else;
//  2. health below LowHealth with streak under RetreatStreakLimit retreats;
//  3. energy at or below LowEnergy conserves;
//  4. otherwise pursue.
//
// Postcondition: st.Mode is the returned mode; st.ModeStreak <= StreakCap+1.
func (t Thresholds) Next(st *AgentState) Mode {
	if st.ModeStreak > StreakCap {
		st.ModeStreak = 0
	}

	switch {
	case float64(st.Health) < t.LowHealth && st.ModeStreak < RetreatStreakLimit:
		st.Mode = Retreat
	case float64(st.Energy) <= t.LowEnergy:
		st.Mode = Conserve
	default:
		st.Mode = Pursue
	}
	st.ModeStreak++
	return st.Mode
}
