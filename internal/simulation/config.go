package simulation

import (
	"fmt"
	"slices"

	"github.com/nvandessel/auralie/internal/affinity"
	"github.com/nvandessel/auralie/internal/compat"
)

// Config controls one simulation run.
type Config struct {
	// Days is the number of simulated days.
	Days int

	// Exchanges is the number of response rounds per texting session.
	Exchanges int

	EnableActivities bool
	ActivityDays     []int

	StartingAffinity int

	// SaveEvery checkpoints the result after every N completed days.
	// Zero disables checkpoints; completion and failure are always saved.
	SaveEvery int

	// ProbeChance is the probability of appending a probing question to
	// a response.
	ProbeChance float64

	// Seed makes probing and activity choice reproducible. Zero draws a
	// random seed per run.
	Seed uint64

	// DateSuggestions requests conversation starters after completion.
	DateSuggestions bool

	Temperature float64
}

// DefaultConfig returns the standard seven-day schedule.
func DefaultConfig() Config {
	return Config{
		Days:             7,
		Exchanges:        3,
		EnableActivities: true,
		ActivityDays:     []int{2, 4, 6},
		StartingAffinity: affinity.DefaultStart,
		SaveEvery:        2,
		ProbeChance:      compat.DefaultProbeChance,
		DateSuggestions:  true,
		Temperature:      0.8,
	}
}

// Validate checks ranges.
func (c Config) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1, got %d", c.Days)
	}
	if c.Exchanges < 1 {
		return fmt.Errorf("exchanges must be at least 1, got %d", c.Exchanges)
	}
	if c.StartingAffinity < affinity.MinLevel || c.StartingAffinity > affinity.MaxLevel {
		return fmt.Errorf("starting affinity must be in [%d, %d], got %d",
			affinity.MinLevel, affinity.MaxLevel, c.StartingAffinity)
	}
	if c.SaveEvery < 0 {
		return fmt.Errorf("save interval must not be negative, got %d", c.SaveEvery)
	}
	if c.ProbeChance < 0 || c.ProbeChance > 1 {
		return fmt.Errorf("probe chance must be in [0, 1], got %g", c.ProbeChance)
	}
	for _, d := range c.ActivityDays {
		if d < 1 {
			return fmt.Errorf("activity day must be at least 1, got %d", d)
		}
	}
	return nil
}

func (c Config) activityOn(day int) bool {
	return c.EnableActivities && slices.Contains(c.ActivityDays, day)
}
