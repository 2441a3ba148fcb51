package compat

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestPool(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{1, 5},
		{2, 5},
		{3, 10},
		{4, 10},
		{5, 10},
		{12, 10},
	}
	for _, tt := range tests {
		if got := len(Pool(tt.day)); got != tt.want {
			t.Errorf("len(Pool(%d)) = %d, want %d", tt.day, got, tt.want)
		}
	}
	if !slices.Contains(Pool(1), "How do you typically spend your weekends?") {
		t.Error("day 1 pool should contain lifestyle questions")
	}
	if !slices.Contains(Pool(6), "What would make you end a relationship immediately?") {
		t.Error("day 6 pool should contain dealbreaker questions")
	}
}

func TestProber_Deterministic(t *testing.T) {
	run := func() []string {
		p := NewSeededProber(42, DefaultProbeChance)
		var out []string
		for i := 0; i < 20; i++ {
			_, q := p.Maybe("hi", 3)
			out = append(out, q)
		}
		return out
	}
	first, second := run(), run()
	if !slices.Equal(first, second) {
		t.Errorf("seeded probers diverged:\n%v\n%v", first, second)
	}
}

func TestProber_ChanceBounds(t *testing.T) {
	always := NewProber(rand.New(rand.NewPCG(1, 1)), 1.0)
	msg, q := always.Maybe("Nice to meet you.", 1)
	if q == "" {
		t.Fatal("chance 1.0 should always probe")
	}
	if !slices.Contains(Pool(1), q) {
		t.Errorf("question %q not from day 1 pool", q)
	}
	want := "Nice to meet you. By the way, I'm curious - " + strings.ToLower(q)
	if msg != want {
		t.Errorf("Maybe() msg = %q, want %q", msg, want)
	}

	never := NewProber(rand.New(rand.NewPCG(1, 1)), 0)
	for i := 0; i < 50; i++ {
		if msg, q := never.Maybe("hey", 5); q != "" || msg != "hey" {
			t.Fatalf("chance 0 probed: msg=%q q=%q", msg, q)
		}
	}

	var nilProber *Prober
	if msg, q := nilProber.Maybe("hey", 1); q != "" || msg != "hey" {
		t.Errorf("nil prober modified message: %q %q", msg, q)
	}
}

func TestProber_RateApproximatesChance(t *testing.T) {
	p := NewSeededProber(7, 0.3)
	hits := 0
	const n = 2000
	for i := 0; i < n; i++ {
		if _, q := p.Maybe("x", 1); q != "" {
			hits++
		}
	}
	rate := float64(hits) / n
	if rate < 0.25 || rate > 0.35 {
		t.Errorf("probe rate = %.3f, want about 0.3", rate)
	}
}
