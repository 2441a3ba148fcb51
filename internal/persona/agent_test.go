package persona

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nvandessel/auralie/internal/compat"
	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/models"
)

func testProfiles() (*models.Profile, *models.Profile) {
	a := &models.Profile{
		ID: "jordan_lee", Name: "Jordan Lee", Age: 31, Gender: models.GenderNonBinary,
		Personality: "INTJ", Bio: "Systems architect.",
		Interests: []string{"chess", "architecture"}, Values: []string{"honesty", "growth"},
		Dealbreakers: []string{"dishonesty"}, CommunicationStyle: "direct and concise",
	}
	b := &models.Profile{
		ID: "sophie_laurent", Name: "Sophie Laurent", Age: 27, Gender: models.GenderFemale,
		Personality: "ESFP", Bio: "Dancer.",
		Interests: []string{"salsa", "festivals"}, Values: []string{"fun", "dishonest behavior"},
		CommunicationStyle: "playful and expressive",
	}
	return a, b
}

func fixedNow() time.Time { return time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC) }

func TestInitiate_ClampsGeneratedDelta(t *testing.T) {
	pa, pb := testProfiles()
	mock := llm.NewMockClient().WithResponses(`{"message": "Morning!", "emotion": "hopeful", "internal_thought": "excited", "fondness_change": 9}`)
	agent := New(pa, mock, Options{Now: fixedNow})
	agent.SetPartner(pb, compat.Pair(pa, pb).A)

	turn, err := agent.Initiate(context.Background(), 1, "first text")
	if err != nil {
		t.Fatalf("Initiate() error: %v", err)
	}
	want := models.Turn{
		Day: 1, Sender: "Jordan Lee", SenderID: "jordan_lee",
		Message: "Morning!", Emotion: "hopeful", InternalThought: "excited",
		AffinityChange: models.AffinityChange{Generated: 5, Total: 5},
		AffinityLevel:  55,
		Timestamp:      fixedNow(),
	}
	if diff := cmp.Diff(want, turn); diff != "" {
		t.Errorf("Initiate() mismatch (-want +got):\n%s", diff)
	}
	if got := len(agent.State().History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestRespond_AppliesPenalties(t *testing.T) {
	pa, pb := testProfiles()
	tests := []struct {
		name      string
		generated int
		wantTotal int
	}{
		{"positive offset by penalty", 5, -2},
		{"sum clamped to -10", -8, -10},
		{"generated clamped first", 25, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := `{"message": "Sure.", "emotion": "annoyed", "internal_thought": "hm", "fondness_change": ` +
				strconv.Itoa(tt.generated) + `}`
			agent := New(pa, llm.NewMockClient().WithResponses(resp), Options{})
			pen := compat.Penalty{Friction: -2, ValueMismatch: -2, Dealbreaker: -3}
			agent.SetPartner(pb, pen)

			turn, err := agent.Respond(context.Background(), "hey!", 2, "texting")
			if err != nil {
				t.Fatalf("Respond() error: %v", err)
			}
			if turn.AffinityChange.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", turn.AffinityChange.Total, tt.wantTotal)
			}
			if turn.AffinityChange.Friction != -2 || turn.AffinityChange.ValueMismatch != -2 || turn.AffinityChange.Dealbreaker != -3 {
				t.Errorf("penalty breakdown = %+v", turn.AffinityChange)
			}
			if turn.AffinityLevel != 50+tt.wantTotal {
				t.Errorf("level = %d, want %d", turn.AffinityLevel, 50+tt.wantTotal)
			}
		})
	}
}

func TestNew_StartingAffinity(t *testing.T) {
	pa, _ := testProfiles()
	zero, seventy := 0, 70
	tests := []struct {
		name  string
		start *int
		want  int
	}{
		{"unset uses default", nil, 50},
		{"explicit zero", &zero, 0},
		{"explicit value", &seventy, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := New(pa, llm.NewMockClient(), Options{StartingAffinity: tt.start})
			if got := agent.State().Level(); got != tt.want {
				t.Errorf("Level() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRespond_HugeDeltaClampsUp(t *testing.T) {
	pa, pb := testProfiles()
	resp := `{"message": "Best text ever", "emotion": "excited", "fondness_change": 1e20}`
	agent := New(pa, llm.NewMockClient().WithResponses(resp), Options{})
	agent.SetPartner(pb, compat.Penalty{})

	turn, err := agent.Respond(context.Background(), "hey!", 1, "texting")
	if err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if turn.Fallback {
		t.Fatal("finite huge delta should parse, not fall back")
	}
	if turn.AffinityChange.Generated != 10 || turn.AffinityLevel != 60 {
		t.Errorf("generated = %d, level = %d, want 10 and 60", turn.AffinityChange.Generated, turn.AffinityLevel)
	}
}

func TestRespond_FallbackOnUnparsableText(t *testing.T) {
	pa, pb := testProfiles()
	mock := llm.NewMockClient().WithResponses("  I'd love to grab coffee sometime!  ")
	agent := New(pa, mock, Options{})
	agent.SetPartner(pb, compat.Penalty{Friction: -2})

	turn, err := agent.Respond(context.Background(), "coffee?", 1, "texting")
	if err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if !turn.Fallback {
		t.Error("Fallback = false, want true")
	}
	if turn.Message != "I'd love to grab coffee sometime!" {
		t.Errorf("Message = %q", turn.Message)
	}
	if turn.Emotion != "neutral" {
		t.Errorf("Emotion = %q, want neutral", turn.Emotion)
	}
	if turn.AffinityChange != (models.AffinityChange{}) {
		t.Errorf("AffinityChange = %+v, want zero", turn.AffinityChange)
	}
	if agent.State().Level() != 50 {
		t.Errorf("level = %d, want 50", agent.State().Level())
	}
	last, ok := agent.State().Last()
	if !ok || last.Emotion != "neutral" || last.Delta != 0 {
		t.Errorf("fallback did not record a neutral history entry: %+v", last)
	}
}

func TestRespond_TransportErrorPropagates(t *testing.T) {
	pa, pb := testProfiles()
	boom := errors.New("connection reset")
	agent := New(pa, llm.NewMockClient().WithError(boom), Options{})
	agent.SetPartner(pb, compat.Penalty{})

	_, err := agent.Respond(context.Background(), "hi", 3, "texting")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	if len(agent.State().History()) != 0 {
		t.Error("transport error must not touch affinity history")
	}
}

func TestRespond_Probing(t *testing.T) {
	pa, pb := testProfiles()
	mock := llm.NewMockClient().WithDefault(`{"message": "Sounds fun.", "emotion": "curious", "fondness_change": 1}`)
	agent := New(pa, mock, Options{Prober: compat.NewSeededProber(3, 1.0)})
	agent.SetPartnerName(pb.Name)

	turn, err := agent.Respond(context.Background(), "hi", 1, "texting")
	if err != nil {
		t.Fatalf("Respond() error: %v", err)
	}
	if turn.ProbeQuestion == "" {
		t.Fatal("ProbeQuestion empty with chance 1.0")
	}
	if !strings.HasPrefix(turn.Message, "Sounds fun. By the way, I'm curious - ") {
		t.Errorf("Message = %q", turn.Message)
	}
	if turn.AffinityChange.Total != 1 {
		t.Errorf("no-partner response should carry no penalty, total = %d", turn.AffinityChange.Total)
	}
}

func TestPrompts_CarryToneFramingAndNotes(t *testing.T) {
	pa, pb := testProfiles()
	mock := llm.NewMockClient().WithDefault(`{"message": "Hmm.", "emotion": "skeptical", "internal_thought": "not sure about this", "fondness_change": -5}`)
	agent := New(pa, mock, Options{})
	agent.SetPartner(pb, compat.Pair(pa, pb).A)

	if _, err := agent.Respond(context.Background(), "first", 1, "texting"); err != nil {
		t.Fatal(err)
	}
	first := mock.LastRequest()
	if !strings.Contains(first.System, "Jordan Lee") || !strings.Contains(first.System, "INTJ") {
		t.Errorf("system prompt missing persona details")
	}
	if !strings.Contains(first.Prompt, "TONE ENFORCEMENT - Your emotion is 'curious'") {
		t.Errorf("prompt missing tone instruction:\n%s", first.Prompt)
	}
	if !strings.Contains(first.Prompt, "COMPATIBILITY NOTES") {
		t.Errorf("prompt missing compatibility notes")
	}
	if strings.Contains(first.Prompt, "PREVIOUS INTERACTION CONTEXT") {
		t.Errorf("first prompt should have no framing")
	}

	if _, err := agent.Respond(context.Background(), "second", 1, "texting"); err != nil {
		t.Fatal(err)
	}
	second := mock.LastRequest().Prompt
	for _, part := range []string{"PREVIOUS INTERACTION CONTEXT", "not sure about this", "Pull back", "'skeptical'", "Sophie Laurent: first"} {
		if !strings.Contains(second, part) {
			t.Errorf("second prompt missing %q:\n%s", part, second)
		}
	}
}

func TestFinalStatement_NoSideEffects(t *testing.T) {
	pa, pb := testProfiles()
	mock := llm.NewMockClient().
		WithResponses(`{"message": "hi", "emotion": "happy", "fondness_change": 4}`, "  I'd like to see them again.  ")
	agent := New(pa, mock, Options{})
	agent.SetPartner(pb, compat.Penalty{})

	if _, err := agent.Initiate(context.Background(), 1, "texting"); err != nil {
		t.Fatal(err)
	}
	before := agent.State().History()

	stmt, err := agent.FinalStatement(context.Background(), 7)
	if err != nil {
		t.Fatalf("FinalStatement() error: %v", err)
	}
	if stmt != "I'd like to see them again." {
		t.Errorf("statement = %q", stmt)
	}
	if diff := cmp.Diff(before, agent.State().History()); diff != "" {
		t.Errorf("FinalStatement changed history:\n%s", diff)
	}
	req := mock.LastRequest()
	if !strings.Contains(req.Prompt, "After spending 7 days") || req.MaxTokens != 300 {
		t.Errorf("final request = %+v", req)
	}
}

func TestSystemPrompt_AllTypesHaveDescriptions(t *testing.T) {
	for _, code := range models.AllTypeCodes() {
		if TypeDescription(code) == "" {
			t.Errorf("no description for %s", code)
		}
	}
	p := &models.Profile{Name: "X", Age: 30, Gender: models.GenderMale, Personality: "ENFP"}
	if got := SystemPrompt(p); !strings.Contains(got, "None specified") {
		t.Errorf("system prompt without dealbreakers should say so:\n%s", got)
	}
}
