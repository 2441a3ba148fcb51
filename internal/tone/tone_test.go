package tone

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in        string
		canonical string
		known     bool
	}{
		{"happy", "happy", true},
		{"  Annoyed ", "annoyed", true},
		{"ANGRY", "angry", true},
		{"euphoric", "neutral", false},
		{"", "neutral", false},
	}
	for _, tt := range tests {
		_, canonical, known := Lookup(tt.in)
		if canonical != tt.canonical || known != tt.known {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.in, canonical, known, tt.canonical, tt.known)
		}
	}
}

func TestEmotions_TableComplete(t *testing.T) {
	want := []string{
		"happy", "excited", "delighted", "intrigued", "curious", "hopeful",
		"neutral", "thoughtful", "contemplative", "unsure",
		"annoyed", "frustrated", "bored", "disappointed", "offended",
		"unimpressed", "confused", "irritated", "skeptical", "angry",
	}
	if got := len(Emotions()); got != len(want) {
		t.Errorf("len(Emotions()) = %d, want %d", got, len(want))
	}
	for _, e := range want {
		r, _, known := Lookup(e)
		if !known {
			t.Errorf("emotion %q missing from table", e)
		}
		if r.Length == "" || r.Style == "" || r.Questions == "" || r.Emojis == "" || r.Guideline == "" {
			t.Errorf("rule for %q has empty fields: %+v", e, r)
		}
	}
}

func TestModifier(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{10, "pulling back"},
		{29, "pulling back"},
		{30, "be measured"},
		{49, "be measured"},
		{50, ""},
		{90, ""},
	}
	for _, tt := range tests {
		got := Modifier(tt.level)
		if tt.want == "" {
			if got != "" {
				t.Errorf("Modifier(%d) = %q, want empty", tt.level, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Modifier(%d) = %q, want it to contain %q", tt.level, got, tt.want)
		}
	}
}

func TestInstruction(t *testing.T) {
	got := For("Bored", 20).Instruction()
	for _, part := range []string{"'bored'", "very short - 1 sentence", "NONE", "pulling back"} {
		if !strings.Contains(got, part) {
			t.Errorf("Instruction() missing %q:\n%s", part, got)
		}
	}

	unknown := For("ecstatic", 70).Instruction()
	if !strings.Contains(unknown, "'neutral'") {
		t.Errorf("unknown emotion should render neutral rule:\n%s", unknown)
	}
}

func TestFraming(t *testing.T) {
	tests := []struct {
		name      string
		rationale string
		delta     int
		want      string
	}{
		{"empty rationale", "", -8, ""},
		{"big drop", "they ignored me", -4, "Pull back"},
		{"small drop", "meh", -1, "slightly reserved"},
		{"boundary -3", "meh", -3, "slightly reserved"},
		{"big gain", "wow", 6, "more warmth"},
		{"boundary 5", "nice", 5, "a bit more engaged"},
		{"moderate gain", "nice", 3, "a bit more engaged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Framing(tt.rationale, tt.delta)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Framing() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Framing(%q, %d) = %q, want it to contain %q", tt.rationale, tt.delta, got, tt.want)
			}
		})
	}

	neutral := Framing("fine", 2)
	if strings.Contains(neutral, "reserved") || strings.Contains(neutral, "engaged") || strings.Contains(neutral, "warmth") {
		t.Errorf("delta 2 should carry no guidance: %q", neutral)
	}
	if !strings.Contains(neutral, "+2") {
		t.Errorf("Framing should render signed delta: %q", neutral)
	}
}
