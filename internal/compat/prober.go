package compat

import (
	"math/rand/v2"
	"strings"
)

// DefaultProbeChance is the probability that a response gets a probing question.
const DefaultProbeChance = 0.3

// Question pools, grouped by what they reveal.
var (
	lifestyleQuestions = []string{
		"What does your ideal Friday night look like?",
		"How do you typically spend your weekends?",
		"Do you prefer big social gatherings or intimate hangouts with close friends?",
		"How much alone time do you need to recharge?",
		"What's your ideal work-life balance?",
	}

	futurePlanningQuestions = []string{
		"Where do you see yourself living in 5 years?",
		"What are your thoughts on having kids someday?",
		"How important is career advancement vs personal fulfillment to you?",
		"What does financial stability mean to you?",
		"What are your non-negotiables in a long-term relationship?",
	}

	valuesQuestions = []string{
		"What do you value most in a relationship?",
		"How do you handle conflict in relationships?",
		"What role does honesty vs kindness play when they conflict?",
		"How important is maintaining your independence in a relationship?",
		"What are your thoughts on traditional vs modern relationship roles?",
	}

	communicationQuestions = []string{
		"How do you prefer to resolve disagreements?",
		"Do you need to talk through problems immediately or take time to think first?",
		"How much communication is too much vs too little for you?",
		"How do you show affection - words, actions, quality time, or physical touch?",
		"How comfortable are you with deep emotional conversations?",
	}

	dealbreakerQuestions = []string{
		"What are absolute deal-breakers for you in dating?",
		"What personality traits do you find most frustrating in others?",
		"What's something people often do that bothers you?",
		"What would make you end a relationship immediately?",
		"What behaviors or habits are you unwilling to compromise on?",
	}

	midPool  = concat(communicationQuestions, valuesQuestions)
	latePool = concat(futurePlanningQuestions, dealbreakerQuestions)
)

// Pool returns the question pool for a simulation day. Early days get
// lighter lifestyle questions; later days go deeper.
func Pool(day int) []string {
	switch {
	case day <= 2:
		return lifestyleQuestions
	case day <= 4:
		return midPool
	default:
		return latePool
	}
}

// Prober decides whether to append a probing question to a message.
// All randomness comes from the injected source, so a seeded Prober is
// fully reproducible.
type Prober struct {
	rng    *rand.Rand
	chance float64
}

// NewProber returns a Prober that fires with probability chance.
// A nil rng selects an unseeded source.
func NewProber(rng *rand.Rand, chance float64) *Prober {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Prober{rng: rng, chance: chance}
}

// NewSeededProber returns a Prober with a deterministic source.
func NewSeededProber(seed uint64, chance float64) *Prober {
	return NewProber(rand.New(rand.NewPCG(seed, seed)), chance)
}

// ForDay picks a random question from the day's pool.
func (p *Prober) ForDay(day int) string {
	pool := Pool(day)
	return pool[p.rng.IntN(len(pool))]
}

// Maybe appends a probing question to msg with the configured probability.
// It returns the possibly-extended message and the question ("" if none).
func (p *Prober) Maybe(msg string, day int) (string, string) {
	if p == nil || p.chance <= 0 {
		return msg, ""
	}
	if p.rng.Float64() >= p.chance {
		return msg, ""
	}
	q := p.ForDay(day)
	return Inject(msg, q), q
}

// Inject appends question to msg in conversational form.
func Inject(msg, question string) string {
	return msg + " By the way, I'm curious - " + strings.ToLower(question)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
