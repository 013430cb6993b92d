// Package config provides Viper-based configuration loading for the arena.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ArenaConfig holds the reference host's rules.
type ArenaConfig struct {
	Width            int `mapstructure:"width"`
	Height           int `mapstructure:"height"`
	StartHealth      int `mapstructure:"start_health"`
	MaxEnergy        int `mapstructure:"max_energy"`
	EnergyRegen      int `mapstructure:"energy_regen"`
	MovesEnergyCost  int `mapstructure:"moves_energy_cost"`
	AttackEnergyCost int `mapstructure:"attack_energy_cost"`
	MaxTurns         int `mapstructure:"max_turns"`
	// Seed selects a deterministic random source; 0 uses crypto/rand.
	Seed int64 `mapstructure:"seed"`
	// Damage is the dice expression rolled for each landed hit.
	Damage string `mapstructure:"damage"`
}

// ContentConfig locates personality definitions and their scripts.
type ContentConfig struct {
	VariantsDir string `mapstructure:"variants_dir"`
	// ScriptsDir is optional; empty disables Lua score hooks.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit caps Lua opcodes per hook call; 0 uses the default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// MatchConfig lists the personalities entered in a match, one robot each.
type MatchConfig struct {
	Roster []string `mapstructure:"roster"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Arena   ArenaConfig   `mapstructure:"arena"`
	Content ContentConfig `mapstructure:"content"`
	Match   MatchConfig   `mapstructure:"match"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.VariantsDir == "" {
		errs = append(errs, "content.variants_dir must not be empty")
	}
	if c.Content.ScriptInstructionLimit < 0 {
		errs = append(errs, "content.script_instruction_limit must not be negative")
	}
	if err := validateMatch(c.Match); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	var errs []string
	if a.Width < 1 || a.Height < 1 {
		errs = append(errs, fmt.Sprintf("arena dimensions must be >= 1, got %dx%d", a.Width, a.Height))
	}
	if a.StartHealth < 1 {
		errs = append(errs, fmt.Sprintf("arena.start_health must be >= 1, got %d", a.StartHealth))
	}
	if a.MaxEnergy < 1 || a.MaxEnergy > 100 {
		errs = append(errs, fmt.Sprintf("arena.max_energy must be 1-100, got %d", a.MaxEnergy))
	}
	if a.EnergyRegen < 0 {
		errs = append(errs, "arena.energy_regen must not be negative")
	}
	if a.MovesEnergyCost < 1 {
		errs = append(errs, fmt.Sprintf("arena.moves_energy_cost must be >= 1, got %d", a.MovesEnergyCost))
	}
	if a.AttackEnergyCost < 0 {
		errs = append(errs, "arena.attack_energy_cost must not be negative")
	}
	if a.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("arena.max_turns must be >= 1, got %d", a.MaxTurns))
	}
	if _, err := dice.Parse(a.Damage); err != nil {
		errs = append(errs, fmt.Sprintf("arena.damage: %v", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMatch(m MatchConfig) error {
	if len(m.Roster) < 2 {
		return errors.New("match.roster must name at least two variants")
	}
	for i, id := range m.Roster {
		if id == "" {
			return fmt.Errorf("match.roster[%d] must not be empty", i)
		}
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARENA_ prefix
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("arena.width", 20)
	v.SetDefault("arena.height", 12)
	v.SetDefault("arena.start_health", 100)
	v.SetDefault("arena.max_energy", 100)
	v.SetDefault("arena.energy_regen", 10)
	v.SetDefault("arena.moves_energy_cost", 5)
	v.SetDefault("arena.attack_energy_cost", 5)
	v.SetDefault("arena.max_turns", 200)
	v.SetDefault("arena.seed", 0)
	v.SetDefault("arena.damage", "1d6")

	v.SetDefault("content.variants_dir", "content/variants")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.script_instruction_limit", 0)
}
