// Package sanitize cleans free text read from persona profiles before it is
// interpolated into agent system prompts. Profiles are user-authored YAML,
// so anything in them can steer the model; this strips control characters,
// markup tags, markdown structure, and code fences while keeping the prose.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nvandessel/auralie/internal/models"
)

// MaxTextLength caps long profile fields such as bio.
const MaxTextLength = 2000

// MaxItemLength caps single list entries (interests, values, dealbreakers)
// and short fields such as name.
const MaxItemLength = 80

var (
	// reXMLTag matches XML/HTML tags with optional attributes, self-closing
	// tags, and processing instructions like <?xml ...?>.
	reXMLTag = regexp.MustCompile(`<[/?!]?[a-zA-Z][a-zA-Z0-9]*(?:\s+[^>]*)?/?>|<\?[^?]*\?>`)

	reMarkdownHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	reHorizontalRule    = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	reTripleBacktick    = regexp.MustCompile("```+")
	reExcessiveNewlines = regexp.MustCompile(`\n{3,}`)
	reWhitespace        = regexp.MustCompile(`\s+`)
	reRepeatedSep       = regexp.MustCompile(`[-_]{2,}`)
)

// Text sanitizes a multi-line profile field. The pipeline:
//  1. Strip null bytes and ASCII control characters (except \n, \t)
//  2. Strip XML/HTML tags
//  3. Replace markdown headings with list markers
//  4. Remove markdown horizontal rules
//  5. Collapse triple backticks to a single backtick
//  6. Collapse 3+ newlines to 2
//  7. Trim, then truncate to MaxTextLength runes
func Text(input string) string {
	if input == "" {
		return ""
	}
	s := stripControlChars(input)
	s = reXMLTag.ReplaceAllString(s, "")
	s = reMarkdownHeading.ReplaceAllString(s, "- ")
	s = reHorizontalRule.ReplaceAllString(s, "")
	s = reTripleBacktick.ReplaceAllString(s, "`")
	s = reExcessiveNewlines.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)
	return truncate(s, MaxTextLength, "...")
}

// Item sanitizes a single-line value. It applies Text and then folds all
// whitespace runs, newlines included, into single spaces.
func Item(input string) string {
	s := Text(input)
	s = strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
	return truncate(s, MaxItemLength, "")
}

// Items sanitizes a list, dropping entries that end up empty.
func Items(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = Item(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ID keeps only [a-z0-9_-'], lowercasing letters and turning spaces into
// underscores. Repeated separators collapse. The result is safe to use as
// a file name in the profile directory.
func ID(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '\'':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	s := reRepeatedSep.ReplaceAllStringFunc(b.String(), func(m string) string { return m[:1] })
	return truncate(s, MaxItemLength, "")
}

// Profile sanitizes every prompt-facing field of p in place. Structured
// fields (age, gender, personality) are left to Profile.Validate.
func Profile(p *models.Profile) {
	if p == nil {
		return
	}
	p.ID = ID(p.ID)
	p.Name = Item(p.Name)
	p.Bio = Text(p.Bio)
	p.InstagramStyle = Text(p.InstagramStyle)
	p.LinkedInSummary = Text(p.LinkedInSummary)
	p.Interests = Items(p.Interests)
	p.Values = Items(p.Values)
	p.Dealbreakers = Items(p.Dealbreakers)
	p.LoveLanguage = Item(p.LoveLanguage)
	p.CommunicationStyle = Text(p.CommunicationStyle)
}

func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r < 0x20 && r != '\n' && r != '\t') || r == 0x7f || r == utf8.RuneError {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func truncate(s string, limit int, suffix string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + suffix
}
