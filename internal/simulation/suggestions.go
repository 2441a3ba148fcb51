package simulation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/models"
)

const (
	maxSuggestions     = 7
	highlightThreshold = 3
	maxHighlights      = 10
	sampleWindow       = 15
	minSuggestionLen   = 20
)

const coachSystem = "You are a dating coach who gives specific, personalized advice based on real conversations and profiles."

// DateSuggestions asks client for first-date conversation starters grounded
// in the profiles and the recorded turns. It never fails: a transport error
// yields profile-derived defaults and an unparsable reply is split by line.
func DateSuggestions(ctx context.Context, client llm.Client, a, b *models.Profile, days []models.DayLog) ([]string, error) {
	raw, err := client.Generate(ctx, llm.Request{
		System:      coachSystem,
		Prompt:      suggestionPrompt(a, b, days),
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		return defaultSuggestions(a, b), err
	}

	items, err := llm.ParseStringList(raw)
	if errors.Is(err, llm.ErrNoList) {
		items = splitSuggestions(raw)
	}
	if len(items) == 0 {
		return defaultSuggestions(a, b), nil
	}
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	return items, nil
}

func suggestionPrompt(a, b *models.Profile, days []models.DayLog) string {
	var all, highlights []string
	for _, d := range days {
		for _, s := range d.TextingSessions {
			for _, t := range s.Exchanges {
				line := t.Sender + ": " + t.Message
				all = append(all, line)
				if t.AffinityChange.Total > highlightThreshold {
					highlights = append(highlights, line)
				}
			}
		}
		for _, act := range d.Activities {
			for _, t := range act.Interactions {
				all = append(all, t.Sender+": "+t.Message)
			}
		}
	}
	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}
	if len(all) > sampleWindow {
		all = all[len(all)-sampleWindow:]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on this dating simulation between %s and %s, generate 5-7 SPECIFIC conversation starters they can use on their actual first date.\n\n", a.Name, b.Name)
	sb.WriteString("PROFILES:\n")
	for _, p := range []*models.Profile{a, b} {
		fmt.Fprintf(&sb, "%s:\n- Interests: %s\n- Values: %s\n\n", p.Name, strings.Join(firstN(p.Interests, 5), ", "), strings.Join(p.Values, ", "))
	}
	sb.WriteString("CONVERSATION HIGHLIGHTS (topics that went well):\n")
	if len(highlights) == 0 {
		sb.WriteString("No strong positive moments\n\n")
	} else {
		sb.WriteString(strings.Join(highlights, "\n") + "\n\n")
	}
	fmt.Fprintf(&sb, "RECENT CONVERSATION SAMPLE:\n%s\n\n", strings.Join(all, "\n"))
	sb.WriteString("Generate 5-7 specific, actionable conversation starters. Each should reference something concrete from their profiles or conversation, ")
	sb.WriteString("mention actual hobbies, places, or activities discussed, and sound natural and casual. Avoid generic advice such as \"talk about your hobbies\".\n\n")
	sb.WriteString("Format as a JSON array of strings:\n[\"suggestion 1\", \"suggestion 2\", ...]")
	return sb.String()
}

func splitSuggestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minSuggestionLen {
			continue
		}
		line = strings.TrimLeft(line, "-•*0123456789.) ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func defaultSuggestions(a, b *models.Profile) []string {
	theirs := "their hobbies"
	if len(b.Interests) > 0 {
		theirs = b.Interests[0]
	}
	yours := "common topics"
	if len(a.Interests) > 0 {
		yours = a.Interests[0]
	}
	return []string{
		"Ask about " + theirs,
		"Discuss your shared interest in " + yours,
		"Share a story from your week and see what they've been up to",
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
