// Package compat computes deterministic compatibility penalties between
// two profiles and supplies probing questions for conversations.
package compat

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/nvandessel/auralie/internal/models"
)

// Penalty values.
const (
	FrictionModerate = -1
	FrictionHigh     = -2

	ValueMismatchLow    = -2
	ValueMismatchMedium = -1

	DealbreakerHit = -3
)

// antagonistic lists type pairs that always score FrictionHigh.
// Lookup is order-independent.
var antagonistic = map[[2]models.TypeCode]bool{
	{"INTJ", "ESFP"}: true,
	{"INFP", "ESTJ"}: true,
	{"INTP", "ESFJ"}: true,
	{"INFJ", "ESTP"}: true,
	{"ISTJ", "ENFP"}: true,
	{"ISTP", "ENFJ"}: true,
	{"ISFJ", "ENTP"}: true,
	{"ISFP", "ENTJ"}: true,
}

// Penalty is the per-turn overlay one agent applies to generated deltas.
type Penalty struct {
	Friction      int `json:"friction"`
	ValueMismatch int `json:"value_mismatch"`
	Dealbreaker   int `json:"dealbreaker"`
}

// Total returns the sum of all components.
func (p Penalty) Total() int {
	return p.Friction + p.ValueMismatch + p.Dealbreaker
}

// PairPenalty holds the penalties for both sides of a pairing.
// Friction and ValueMismatch are shared; Dealbreaker is per side.
type PairPenalty struct {
	A Penalty `json:"a"`
	B Penalty `json:"b"`
}

// Antagonistic reports whether a and b form one of the fixed clashing pairs.
func Antagonistic(a, b models.TypeCode) bool {
	return antagonistic[[2]models.TypeCode{a, b}] || antagonistic[[2]models.TypeCode{b, a}]
}

// OpposingPositions counts positions where a and b hold opposing letters.
func OpposingPositions(a, b models.TypeCode) int {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	n := 0
	for i := 0; i < 4; i++ {
		if models.Opposite(i, a[i]) == b[i] {
			n++
		}
	}
	return n
}

// Friction scores the personality-type clash between a and b.
// It is symmetric in its arguments.
func Friction(a, b models.TypeCode) int {
	if Antagonistic(a, b) {
		return FrictionHigh
	}
	switch n := OpposingPositions(a, b); {
	case n >= 3:
		return FrictionHigh
	case n == 2:
		return FrictionModerate
	default:
		return 0
	}
}

// ValueOverlap returns the fraction of a's distinct values present in b's
// values, compared case-insensitively. ok is false when a has no values.
func ValueOverlap(a, b []string) (overlap float64, shared int, ok bool) {
	own := normalizeSet(a)
	if len(own) == 0 {
		return 0, 0, false
	}
	theirs := normalizeSet(b)
	for v := range own {
		if theirs[v] {
			shared++
		}
	}
	return float64(shared) / float64(len(own)), shared, true
}

// ValueMismatch scores how few of a's values b shares.
func ValueMismatch(a, b []string) int {
	overlap, _, ok := ValueOverlap(a, b)
	if !ok {
		return 0
	}
	switch {
	case overlap < 0.3:
		return ValueMismatchLow
	case overlap < 0.5:
		return ValueMismatchMedium
	default:
		return 0
	}
}

// Dealbreaker returns DealbreakerHit if any of p's dealbreakers matches one
// of partner's values, interests or communication style. A dealbreaker
// matches a trait when its words appear in order in the trait, or when each
// of its significant words shares a stem with some word of the trait
// ("dishonesty" vs "dishonest behavior"). Matching is case-insensitive.
func Dealbreaker(p, partner *models.Profile) int {
	if hit, _ := dealbreakerMatch(p, partner); hit {
		return DealbreakerHit
	}
	return 0
}

func dealbreakerMatch(p, partner *models.Profile) (bool, string) {
	if p == nil || partner == nil || len(p.Dealbreakers) == 0 {
		return false, ""
	}
	traits := make([]string, 0, len(partner.Values)+len(partner.Interests)+1)
	traits = append(traits, partner.Values...)
	traits = append(traits, partner.Interests...)
	traits = append(traits, partner.CommunicationStyle)

	for _, db := range p.Dealbreakers {
		d := words(db)
		if len(d) == 0 {
			continue
		}
		for _, t := range traits {
			if matches(d, words(t)) {
				return true, db
			}
		}
	}
	return false, ""
}

// minWordLen keeps short words such as "of" or "no" out of stem matching.
const minWordLen = 4

// matches reports whether the dealbreaker words d hit the trait words t.
func matches(d, t []string) bool {
	if len(t) == 0 {
		return false
	}
	if containsRun(t, d) {
		return true
	}
	significant := 0
	for _, wd := range d {
		if len(wd) < minWordLen {
			continue
		}
		significant++
		if !slices.ContainsFunc(t, func(wt string) bool { return sameStem(wd, wt) }) {
			return false
		}
	}
	return significant > 0
}

// sameStem reports whether one word is a prefix of the other, with the
// shorter at least minWordLen long.
func sameStem(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return len(a) >= minWordLen && strings.HasPrefix(b, a)
}

// containsRun reports whether run appears contiguously in ws.
func containsRun(ws, run []string) bool {
	for i := 0; i+len(run) <= len(ws); i++ {
		if slices.Equal(ws[i:i+len(run)], run) {
			return true
		}
	}
	return false
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Pair computes the penalties for both sides of the pairing (a, b).
// Value overlap is measured from a's values; the result is shared.
func Pair(a, b *models.Profile) PairPenalty {
	friction := Friction(a.Personality, b.Personality)
	values := ValueMismatch(a.Values, b.Values)
	return PairPenalty{
		A: Penalty{Friction: friction, ValueMismatch: values, Dealbreaker: Dealbreaker(a, b)},
		B: Penalty{Friction: friction, ValueMismatch: values, Dealbreaker: Dealbreaker(b, a)},
	}
}

// Notes returns a human-readable list of the checks that triggered for p
// against partner, or "" when none did.
func Notes(p, partner *models.Profile) string {
	var issues []string

	if Friction(p.Personality, partner.Personality) < 0 {
		issues = append(issues, fmt.Sprintf(
			"Your %s and their %s personalities may have natural friction in communication styles and energy levels",
			p.Personality, partner.Personality))
	}
	if ValueMismatch(p.Values, partner.Values) < 0 {
		_, shared, _ := ValueOverlap(p.Values, partner.Values)
		issues = append(issues, fmt.Sprintf("You only share %d core values with them, which may cause friction", shared))
	}
	if Dealbreaker(p, partner) < 0 {
		issues = append(issues, "Some of their traits may conflict with your dealbreakers")
	}

	if len(issues) == 0 {
		return ""
	}
	return "COMPATIBILITY NOTES:\n- " + strings.Join(issues, "\n- ")
}

func normalizeSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}
