package ai

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// BodyStats is the stat line a robot is built with.
//
// Invariant: Attack + Defense + Moves == StatBudget.
type BodyStats struct {
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Moves   int `yaml:"moves"`
}

// ModeWeights holds one weight set per mode.
type ModeWeights struct {
	Pursue   Weights `yaml:"pursue"`
	Conserve Weights `yaml:"conserve"`
	// Retreat is only used by variants whose retreat style is "none".
	Retreat Weights `yaml:"retreat"`
}

// For returns the weights for m.
func (w ModeWeights) For(m Mode) Weights {
	switch m {
	case Conserve:
		return w.Conserve
	case Retreat:
		return w.Retreat
	default:
		return w.Pursue
	}
}

// Variant is a fighter personality: thresholds, weights, and movement habits.
type Variant struct {
	ID          string       `yaml:"id"`
	Description string       `yaml:"description"`
	Body        BodyStats    `yaml:"body"`
	LowHealth   float64      `yaml:"low_health"`
	LowEnergy   float64      `yaml:"low_energy"`
	Retreat     RetreatStyle `yaml:"retreat"`
	// EnergyLimitedMoves caps every move at energy / moves_energy_cost.
	// Conserve and Retreat turns are always capped this way.
	EnergyLimitedMoves bool `yaml:"energy_limited_moves"`
	// Passive variants never move and never request combat.
	Passive bool        `yaml:"passive"`
	Weights ModeWeights `yaml:"weights"`
	// ScoreHook names an optional Lua function whose numeric result is added
	// to every rival's score.
	ScoreHook string `yaml:"score_hook"`
}

// Thresholds returns the variant's mode thresholds.
func (v *Variant) Thresholds() Thresholds {
	return Thresholds{LowHealth: v.LowHealth, LowEnergy: v.LowEnergy}
}

// Validate checks all required fields and cross-field constraints.
//
// Postcondition: nil return guarantees a non-empty ID, a known retreat style,
// non-negative stats that spend exactly StatBudget, and non-negative thresholds.
func (v *Variant) Validate() error {
	if v.ID == "" {
		return errors.New("ai.Variant: ID must not be empty")
	}
	var errs []string
	if err := v.Retreat.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	b := v.Body
	if b.Attack < 0 || b.Defense < 0 || b.Moves < 0 {
		errs = append(errs, fmt.Sprintf("body stats must not be negative, got %+v", b))
	}
	if sum := b.Attack + b.Defense + b.Moves; sum != StatBudget {
		errs = append(errs, fmt.Sprintf("body stats must sum to %d, got %d", StatBudget, sum))
	}
	if v.LowHealth < 0 || v.LowEnergy < 0 {
		errs = append(errs, "thresholds must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("ai.Variant %q: %s", v.ID, strings.Join(errs, "; "))
	}
	return nil
}

// yamlVariantFile wraps the YAML top-level key.
type yamlVariantFile struct {
	Variant *Variant `yaml:"variant"`
}

// LoadVariants reads all *.yaml files from dir and returns parsed Variants.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns error if any YAML file fails to parse or validate.
func LoadVariants(dir string) ([]*Variant, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadVariants: reading %q: %w", dir, err)
	}
	var variants []*Variant
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadVariants: reading %s: %w", e.Name(), err)
		}
		var f yamlVariantFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("ai.LoadVariants: parsing %s: %w", e.Name(), err)
		}
		if f.Variant == nil {
			return nil, fmt.Errorf("ai.LoadVariants: %s missing top-level 'variant' key", e.Name())
		}
		if err := f.Variant.Validate(); err != nil {
			return nil, err
		}
		variants = append(variants, f.Variant)
	}
	return variants, nil
}
