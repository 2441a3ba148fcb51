// Package tone maps an agent's emotion and affinity to constraints on how
// its next message should read.
package tone

import (
	"fmt"
	"strings"
)

// Rule describes the expected shape of a message for one emotion.
type Rule struct {
	Length    string
	Style     string
	Questions string
	Emojis    string
	Guideline string
}

// DefaultEmotion is used for any label missing from the table.
const DefaultEmotion = "neutral"

var rules = map[string]Rule{
	// positive
	"happy": {
		Length: "medium to long", Style: "warm, friendly, expressive",
		Questions: "yes - show interest", Emojis: "appropriate, 1-2 max",
		Guideline: "Use exclamation points, share enthusiastically, ask follow-up questions",
	},
	"excited": {
		Length: "long, detailed", Style: "enthusiastic, energetic, animated",
		Questions: "yes - lots of curiosity", Emojis: "appropriate, 2-3 max",
		Guideline: "Show genuine enthusiasm, ask multiple questions, share stories",
	},
	"delighted": {
		Length: "medium to long", Style: "warm, appreciative, positive",
		Questions: "yes - engaged interest", Emojis: "appropriate, 1-2 max",
		Guideline: "Express appreciation, build on their topic, show you're listening",
	},
	"intrigued": {
		Length: "medium", Style: "curious, engaged, thoughtful",
		Questions: "yes - probing questions", Emojis: "minimal or none",
		Guideline: "Ask clarifying questions, show intellectual curiosity",
	},
	"curious": {
		Length: "short to medium", Style: "inquisitive, open",
		Questions: "yes - direct questions", Emojis: "minimal or none",
		Guideline: "Ask questions to learn more, keep it simple",
	},
	"hopeful": {
		Length: "medium", Style: "optimistic, warm, tentative",
		Questions: "yes - gentle inquiries", Emojis: "appropriate, 1 max",
		Guideline: "Express optimism about connection, suggest possibilities",
	},

	// neutral
	"neutral": {
		Length: "short to medium", Style: "polite but reserved, factual",
		Questions: "optional - if relevant", Emojis: "none",
		Guideline: "Respond appropriately but don't overextend, keep it balanced",
	},
	"thoughtful": {
		Length: "medium", Style: "reflective, measured, sincere",
		Questions: "yes - meaningful questions", Emojis: "none",
		Guideline: "Take their point seriously, respond with depth",
	},
	"contemplative": {
		Length: "short to medium", Style: "reflective, internal, measured",
		Questions: "minimal", Emojis: "none",
		Guideline: "Share your thoughts but keep some reserve",
	},
	"unsure": {
		Length: "short", Style: "hesitant, uncertain, cautious",
		Questions: "maybe - seeking clarity", Emojis: "none",
		Guideline: "Express uncertainty, ask for clarification, be tentative",
	},

	// negative
	"annoyed": {
		Length: "short - 1-2 sentences MAX", Style: "curt, direct, less warm",
		Questions: "NO - you're not interested in extending this", Emojis: "NONE",
		Guideline: "Keep it brief, no exclamation points, minimal enthusiasm. Example: 'Sure.' or 'That's fine.'",
	},
	"frustrated": {
		Length: "short to medium", Style: "direct, firm, possibly sharp",
		Questions: "only if challenging them", Emojis: "NONE",
		Guideline: "Be direct about the issue, don't sugarcoat. Example: 'I don't think that's what I meant.'",
	},
	"bored": {
		Length: "very short - 1 sentence", Style: "generic, minimal effort, disengaged",
		Questions: "NO - you're not invested", Emojis: "NONE",
		Guideline: "Give bare minimum response. Example: 'Cool.' or 'Yeah, I guess.'",
	},
	"disappointed": {
		Length: "short", Style: "subdued, less enthusiastic, distant",
		Questions: "minimal - low engagement", Emojis: "NONE",
		Guideline: "Show lack of enthusiasm, pull back. Example: 'Oh. That's different than I expected.'",
	},
	"offended": {
		Length: "short to medium", Style: "firm, clear boundaries, possibly cold",
		Questions: "NO - you're addressing the offense", Emojis: "NONE",
		Guideline: "Call out the behavior, set boundaries. Example: 'I don't appreciate that comment.'",
	},
	"unimpressed": {
		Length: "very short", Style: "neutral to slightly dismissive",
		Questions: "NO", Emojis: "NONE",
		Guideline: "Minimal response, move on. Example: 'Okay.' or 'I see.'",
	},
	"confused": {
		Length: "short", Style: "uncertain, seeking clarity",
		Questions: "yes - asking for explanation", Emojis: "NONE",
		Guideline: "Express confusion, ask for clarification. Example: 'Wait, what do you mean?'",
	},
	"irritated": {
		Length: "short", Style: "terse, impatient, direct",
		Questions: "NO", Emojis: "NONE",
		Guideline: "Be brief and less warm. Example: 'Fine.' or 'Whatever works.'",
	},
	"skeptical": {
		Length: "short to medium", Style: "questioning, doubtful, reserved",
		Questions: "yes - challenging questions", Emojis: "NONE",
		Guideline: "Express doubt politely. Example: 'I'm not sure I agree with that.'",
	},
	"angry": {
		Length: "short to medium", Style: "firm, direct, possibly intense",
		Questions: "NO - you're expressing anger", Emojis: "NONE",
		Guideline: "Be very direct, set clear boundaries. Example: 'That's completely unacceptable.'",
	},
}

// Emotions returns the canonical emotion labels known to the table.
func Emotions() []string {
	out := make([]string, 0, len(rules))
	for k := range rules {
		out = append(out, k)
	}
	return out
}

// Lookup returns the rule for emotion. Lookup is case-insensitive and
// trimmed; unknown labels resolve to DefaultEmotion and known is false.
func Lookup(emotion string) (rule Rule, canonical string, known bool) {
	key := strings.ToLower(strings.TrimSpace(emotion))
	if r, ok := rules[key]; ok {
		return r, key, true
	}
	return rules[DefaultEmotion], DefaultEmotion, false
}

// Modifier returns the affinity-level modifier, or "" above 50.
func Modifier(level int) string {
	switch {
	case level < 30:
		return "Your low fondness (< 30) means you should be LESS engaged, shorter responses, pulling back emotionally"
	case level < 50:
		return "Your moderate fondness (30-50) means you're uncertain about them - be measured, not too enthusiastic"
	default:
		return ""
	}
}

// Context is the resolved tone for one turn.
type Context struct {
	Emotion  string
	Level    int
	Rule     Rule
	Modifier string
}

// For resolves the tone context for an emotion and affinity level.
func For(emotion string, level int) Context {
	rule, canonical, _ := Lookup(emotion)
	return Context{
		Emotion:  canonical,
		Level:    level,
		Rule:     rule,
		Modifier: Modifier(level),
	}
}

// Instruction renders the context for inclusion in a generation request.
func (c Context) Instruction() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TONE ENFORCEMENT - Your emotion is '%s':\n", c.Emotion)
	fmt.Fprintf(&b, "- Message length: %s\n", c.Rule.Length)
	fmt.Fprintf(&b, "- Style: %s\n", c.Rule.Style)
	fmt.Fprintf(&b, "- Questions: %s\n", c.Rule.Questions)
	fmt.Fprintf(&b, "- Emojis: %s\n", c.Rule.Emojis)
	fmt.Fprintf(&b, "- Guideline: %s\n", c.Rule.Guideline)
	if c.Modifier != "" {
		fmt.Fprintf(&b, "- %s\n", c.Modifier)
	}
	return b.String()
}

// Framing turns the previous turn's rationale and applied delta into
// guidance for the next turn. It returns "" when rationale is empty.
func Framing(rationale string, delta int) string {
	rationale = strings.TrimSpace(rationale)
	if rationale == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("PREVIOUS INTERACTION CONTEXT:\n")
	fmt.Fprintf(&b, "- Last time you thought: %q\n", rationale)
	fmt.Fprintf(&b, "- Your fondness changed by %+d\n", delta)
	if g := framingGuidance(delta); g != "" {
		fmt.Fprintf(&b, "- %s\n", g)
	}
	return b.String()
}

func framingGuidance(delta int) string {
	switch {
	case delta < -3:
		return "You were put off by them. Pull back and be more distant this time."
	case delta < 0:
		return "You were slightly disappointed. Be slightly reserved."
	case delta > 5:
		return "You were impressed! Show more warmth and interest."
	case delta > 2:
		return "You liked that interaction. Be a bit more engaged."
	default:
		return ""
	}
}
