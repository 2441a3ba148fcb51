package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAllTypeCodes(t *testing.T) {
	codes := AllTypeCodes()
	if len(codes) != 16 {
		t.Fatalf("len(AllTypeCodes()) = %d, want 16", len(codes))
	}
	seen := make(map[TypeCode]bool)
	for _, c := range codes {
		if !c.Valid() {
			t.Errorf("code %q should be valid", c)
		}
		if seen[c] {
			t.Errorf("duplicate code %q", c)
		}
		seen[c] = true
	}
}

func TestParseTypeCode(t *testing.T) {
	tests := []struct {
		in      string
		want    TypeCode
		wantErr bool
	}{
		{in: "INTJ", want: "INTJ"},
		{in: " enfp ", want: "ENFP"},
		{in: "ABCD", wantErr: true},
		{in: "INT", wantErr: true},
		{in: "INTJX", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTypeCode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTypeCode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTypeCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOpposite(t *testing.T) {
	tests := []struct {
		pos    int
		letter byte
		want   byte
	}{
		{0, 'E', 'I'},
		{0, 'I', 'E'},
		{1, 'S', 'N'},
		{2, 'F', 'T'},
		{3, 'J', 'P'},
		{0, 'S', 0},
		{4, 'E', 0},
	}
	for _, tt := range tests {
		if got := Opposite(tt.pos, tt.letter); got != tt.want {
			t.Errorf("Opposite(%d, %c) = %q, want %q", tt.pos, tt.letter, got, tt.want)
		}
	}
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{Name: "Clare Martinez", Age: 29, Personality: "INFJ"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(p *Profile)
		errPart string
	}{
		{"empty name", func(p *Profile) { p.Name = " " }, "name"},
		{"too young", func(p *Profile) { p.Age = 17 }, "age"},
		{"too old", func(p *Profile) { p.Age = 101 }, "age"},
		{"bad type", func(p *Profile) { p.Personality = "XXXX" }, "personality"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.errPart)
			}
		})
	}
}

func TestProfileNormalize(t *testing.T) {
	p := Profile{Name: "Ryan O'Brien", Personality: "estp"}
	p.Normalize()
	if p.ID != "ryan_o'brien" {
		t.Errorf("ID = %q, want %q", p.ID, "ryan_o'brien")
	}
	if p.Personality != "ESTP" {
		t.Errorf("Personality = %q, want ESTP", p.Personality)
	}

	p = Profile{ID: "custom", Name: "Someone"}
	p.Normalize()
	if p.ID != "custom" {
		t.Errorf("Normalize overwrote explicit ID: got %q", p.ID)
	}
}

func TestSimulationResultJSONShape(t *testing.T) {
	r := SimulationResult{
		ID:     "a_b_1",
		Status: StatusInProgress,
		Days: []DayLog{{
			Day: 1,
			TextingSessions: []TextingSession{{
				Time:      "morning",
				Exchanges: []Turn{{Day: 1, Sender: "A", Message: "hi"}, {Day: 1, Sender: "B", Message: "hey"}},
			}},
		}},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"id", "participants", "start_time", "days", "status", "completed_days"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("serialized result missing key %q", key)
		}
	}
	for _, key := range []string{"end_time", "compatibility", "error", "date_suggestions"} {
		if _, ok := raw[key]; ok {
			t.Errorf("serialized result should omit empty key %q", key)
		}
	}
	if raw["status"] != "in_progress" {
		t.Errorf("status = %v, want in_progress", raw["status"])
	}
	if got := r.TurnCount(); got != 2 {
		t.Errorf("TurnCount() = %d, want 2", got)
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := map[Status]bool{
		StatusPending:    false,
		StatusInProgress: false,
		StatusCompleted:  true,
		StatusFailed:     true,
	}
	for s, want := range tests {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted, StatusFailed} {
		if !s.Valid() {
			t.Errorf("%s.Valid() = false", s)
		}
	}
	for _, s := range []Status{"", "running", "COMPLETED"} {
		if s.Valid() {
			t.Errorf("%q.Valid() = true", s)
		}
	}
}
