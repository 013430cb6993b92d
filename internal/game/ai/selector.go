package ai

import "sort"

// Ranked pairs a rival snapshot with its score.
type Ranked struct {
	Snapshot
	Score float64
}

// Rank scores every eligible rival and orders them best first. Ties go to the
// lowest id.
//
// Postcondition: the result is independent of the order of snaps.
func Rank(selfID int, snaps []Snapshot, score func(Snapshot) float64) []Ranked {
	ranked := make([]Ranked, 0, len(snaps))
	for _, s := range snaps {
		if !Eligible(selfID, s) {
			continue
		}
		ranked = append(ranked, Ranked{Snapshot: s, Score: score(s)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// SelectTarget returns the top-ranked rival, or false when nobody is eligible.
func SelectTarget(ranked []Ranked) (Snapshot, bool) {
	if len(ranked) == 0 {
		return Snapshot{}, false
	}
	return ranked[0].Snapshot, true
}
