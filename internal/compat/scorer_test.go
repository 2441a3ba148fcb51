package compat

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nvandessel/auralie/internal/models"
)

func TestFriction(t *testing.T) {
	tests := []struct {
		name string
		a, b models.TypeCode
		want int
	}{
		{"identical", "INTJ", "INTJ", 0},
		{"one opposing", "INTJ", "ENTJ", 0},
		{"two opposing", "INTJ", "ENFJ", -1},
		{"three opposing", "INTJ", "ESFJ", -2},
		{"four opposing", "ENFJ", "ISTP", -2},
		{"table pair", "INTJ", "ESFP", -2},
		{"table pair reversed", "ESFP", "INTJ", -2},
		{"invalid code", "XXXX", "INTJ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Friction(tt.a, tt.b); got != tt.want {
				t.Errorf("Friction(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFriction_SymmetricForAllPairs(t *testing.T) {
	codes := models.AllTypeCodes()
	for _, a := range codes {
		for _, b := range codes {
			if Friction(a, b) != Friction(b, a) {
				t.Errorf("Friction(%s, %s) = %d but Friction(%s, %s) = %d",
					a, b, Friction(a, b), b, a, Friction(b, a))
			}
			if got := Friction(a, b); got < -2 || got > 0 {
				t.Errorf("Friction(%s, %s) = %d, out of range", a, b, got)
			}
		}
	}
}

func TestAntagonistic_CoversEveryComplement(t *testing.T) {
	for _, a := range models.AllTypeCodes() {
		for _, b := range models.AllTypeCodes() {
			if OpposingPositions(a, b) == 4 && !Antagonistic(a, b) {
				t.Errorf("complementary pair %s/%s missing from table", a, b)
			}
		}
	}
}

func TestValueMismatch(t *testing.T) {
	a := []string{"honesty", "family", "growth", "adventure", "creativity"}
	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"no values", nil, []string{"honesty"}, 0},
		{"20 percent", a, []string{"honesty"}, -2},
		{"40 percent", a, []string{"honesty", "family", "money"}, -1},
		{"60 percent", a, []string{"Honesty", "FAMILY", "growth"}, 0},
		{"full", a, a, 0},
		{"none shared", a, []string{"status"}, -2},
		{"duplicates ignored", []string{"honesty", "Honesty", "family"}, []string{"honesty"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueMismatch(tt.a, tt.b); got != tt.want {
				t.Errorf("ValueMismatch() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDealbreaker(t *testing.T) {
	tests := []struct {
		name    string
		p       models.Profile
		partner models.Profile
		want    int
	}{
		{
			name:    "no dealbreakers",
			p:       models.Profile{},
			partner: models.Profile{Values: []string{"dishonesty"}},
			want:    0,
		},
		{
			name:    "word stem match on value",
			p:       models.Profile{Dealbreakers: []string{"dishonesty"}},
			partner: models.Profile{Values: []string{"dishonest behavior"}},
			want:    -3,
		},
		{
			name:    "phrase match on interest",
			p:       models.Profile{Dealbreakers: []string{"Smoking"}},
			partner: models.Profile{Interests: []string{"cigar smoking"}},
			want:    -3,
		},
		{
			name:    "match on communication style",
			p:       models.Profile{Dealbreakers: []string{"passive aggressive"}},
			partner: models.Profile{CommunicationStyle: "Passive aggressive and sarcastic"},
			want:    -3,
		},
		{
			name:    "multiple matches not cumulative",
			p:       models.Profile{Dealbreakers: []string{"smoking", "laziness"}},
			partner: models.Profile{Interests: []string{"smoking"}, Values: []string{"laziness"}},
			want:    -3,
		},
		{
			name:    "empty strings never match",
			p:       models.Profile{Dealbreakers: []string{"", " "}},
			partner: models.Profile{Values: []string{""}, CommunicationStyle: ""},
			want:    0,
		},
		{
			name:    "short words ignored",
			p:       models.Profile{Dealbreakers: []string{"lack of ambition"}},
			partner: models.Profile{Values: []string{"professional growth"}},
			want:    0,
		},
		{
			name:    "shared noun with different qualifier",
			p:       models.Profile{Dealbreakers: []string{"poor communication"}},
			partner: models.Profile{CommunicationStyle: "open communication"},
			want:    0,
		},
		{
			name:    "negated dealbreaker vs plain interest",
			p:       models.Profile{Dealbreakers: []string{"no sense of humor"}},
			partner: models.Profile{Interests: []string{"stand-up humor"}},
			want:    0,
		},
		{
			name:    "lack of a value the partner holds",
			p:       models.Profile{Dealbreakers: []string{"lack of family values"}},
			partner: models.Profile{Values: []string{"family"}},
			want:    0,
		},
		{
			name:    "word inside a longer word",
			p:       models.Profile{Dealbreakers: []string{"pda"}},
			partner: models.Profile{Interests: []string{"software updates"}},
			want:    0,
		},
		{
			name:    "short dealbreaker as whole word",
			p:       models.Profile{Dealbreakers: []string{"PDA"}},
			partner: models.Profile{Interests: []string{"pda in public"}},
			want:    -3,
		},
		{
			name:    "every significant word stem matches",
			p:       models.Profile{Dealbreakers: []string{"close-mindedness"}},
			partner: models.Profile{CommunicationStyle: "blunt, closed minded"},
			want:    -3,
		},
		{
			name:    "no overlap",
			p:       models.Profile{Dealbreakers: []string{"rudeness"}},
			partner: models.Profile{Values: []string{"kindness"}, Interests: []string{"hiking"}},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dealbreaker(&tt.p, &tt.partner); got != tt.want {
				t.Errorf("Dealbreaker() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPair(t *testing.T) {
	a := &models.Profile{
		Name:         "A",
		Personality:  "INTJ",
		Values:       []string{"honesty", "growth"},
		Dealbreakers: []string{"dishonesty"},
	}
	b := &models.Profile{
		Name:        "B",
		Personality: "ESFP",
		Values:      []string{"fun", "dishonest behavior"},
	}

	got := Pair(a, b)
	want := PairPenalty{
		A: Penalty{Friction: -2, ValueMismatch: -2, Dealbreaker: -3},
		B: Penalty{Friction: -2, ValueMismatch: -2, Dealbreaker: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pair() mismatch (-want +got):\n%s", diff)
	}
	if got.A.Total() != -7 {
		t.Errorf("A.Total() = %d, want -7", got.A.Total())
	}

	// Deterministic across calls.
	if diff := cmp.Diff(got, Pair(a, b)); diff != "" {
		t.Errorf("Pair() not deterministic:\n%s", diff)
	}
}

func TestNotes(t *testing.T) {
	a := &models.Profile{Personality: "INTJ", Values: []string{"honesty", "growth", "family"}, Dealbreakers: []string{"smoking"}}
	b := &models.Profile{Personality: "ESFP", Values: []string{"honesty"}, Interests: []string{"smoking"}}

	notes := Notes(a, b)
	if !strings.HasPrefix(notes, "COMPATIBILITY NOTES:\n- ") {
		t.Fatalf("Notes() = %q, want COMPATIBILITY NOTES prefix", notes)
	}
	for _, part := range []string{"INTJ", "ESFP", "share 1 core values", "dealbreakers"} {
		if !strings.Contains(notes, part) {
			t.Errorf("Notes() missing %q:\n%s", part, notes)
		}
	}

	same := &models.Profile{Personality: "INTJ", Values: []string{"honesty"}}
	if got := Notes(same, same); got != "" {
		t.Errorf("Notes() with no issues = %q, want empty", got)
	}
}
