package models

import (
	"fmt"
	"strings"
)

// Gender is a participant's self-declared gender.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non-binary"
)

// Profile describes one participant. Profiles are immutable for the
// duration of a simulation.
type Profile struct {
	// ID is the lookup key in the profile store (e.g., "david_chen").
	// Derived from Name when empty.
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`

	Gender Gender `json:"gender" yaml:"gender"`

	// Personality is the four-letter type code.
	Personality TypeCode `json:"personality" yaml:"personality"`

	Bio             string `json:"bio" yaml:"bio"`
	InstagramStyle  string `json:"instagram_style,omitempty" yaml:"instagram_style,omitempty"`
	LinkedInSummary string `json:"linkedin_summary,omitempty" yaml:"linkedin_summary,omitempty"`

	Interests    []string `json:"interests" yaml:"interests"`
	Values       []string `json:"values" yaml:"values"`
	Dealbreakers []string `json:"dealbreakers,omitempty" yaml:"dealbreakers,omitempty"`

	LoveLanguage       string `json:"love_language,omitempty" yaml:"love_language,omitempty"`
	CommunicationStyle string `json:"communication_style" yaml:"communication_style"`
}

// ProfileID converts a display name into the store ID format:
// lowercase with spaces replaced by underscores.
func ProfileID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Normalize fills derived fields and canonicalizes the type code.
func (p *Profile) Normalize() {
	if p.ID == "" {
		p.ID = ProfileID(p.Name)
	}
	p.Personality = TypeCode(strings.ToUpper(strings.TrimSpace(string(p.Personality))))
}

// Validate checks the fields the simulation depends on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Age < 18 || p.Age > 100 {
		return fmt.Errorf("profile %s: age must be between 18 and 100, got %d", p.Name, p.Age)
	}
	if !p.Personality.Valid() {
		return fmt.Errorf("profile %s: invalid personality type %q", p.Name, p.Personality)
	}
	return nil
}
