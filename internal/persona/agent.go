// Package persona implements the agent that plays one profile in a simulation.
package persona

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nvandessel/auralie/internal/affinity"
	"github.com/nvandessel/auralie/internal/compat"
	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/logging"
	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/tone"
)

// Delta bounds for generated affinity changes.
const (
	InitiateDeltaLimit = 5
	RespondDeltaLimit  = 10
)

const (
	historyWindow      = 5
	finalHistoryWindow = 10
	fallbackEmotion    = "neutral"
)

// Options tunes an Agent. The zero value is usable.
type Options struct {
	// StartingAffinity is the initial level. Nil means affinity.DefaultStart;
	// a pointer to 0 starts at 0.
	StartingAffinity *int

	// Prober appends probing questions to responses. Nil disables probing.
	Prober *compat.Prober

	Temperature      float64
	FinalTemperature float64
	MaxTokens        int
	FinalMaxTokens   int

	Logger *slog.Logger
	Trace  *logging.TraceLogger

	// Now is the clock used to stamp turns.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StartingAffinity == nil {
		start := affinity.DefaultStart
		o.StartingAffinity = &start
	}
	if o.Temperature == 0 {
		o.Temperature = 0.8
	}
	if o.FinalTemperature == 0 {
		o.FinalTemperature = 0.7
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = 500
	}
	if o.FinalMaxTokens == 0 {
		o.FinalMaxTokens = 300
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type exchange struct {
	partnerMessage string
	message        string
}

// Agent plays one profile. An Agent is not safe for concurrent use; one
// simulation drives it sequentially.
type Agent struct {
	profile *models.Profile
	client  llm.Client
	state   *affinity.State
	opts    Options
	logger  *slog.Logger
	system  string

	partner     *models.Profile
	partnerName string
	penalty     compat.Penalty
	notes       string

	history       []exchange
	lastRationale string
	lastDelta     int
}

// New creates an agent for profile using client for generation.
func New(profile *models.Profile, client llm.Client, opts Options) *Agent {
	opts = opts.withDefaults()
	return &Agent{
		profile:     profile,
		client:      client,
		state:       affinity.New(profile.ID, *opts.StartingAffinity),
		opts:        opts,
		logger:      opts.Logger.With("agent", profile.Name),
		system:      SystemPrompt(profile),
		partnerName: "them",
	}
}

// SetPartner records the partner and the penalty this agent applies to
// every response. The penalty is fixed for the agent's lifetime.
func (a *Agent) SetPartner(partner *models.Profile, penalty compat.Penalty) {
	a.partner = partner
	a.partnerName = partner.Name
	a.penalty = penalty
	a.notes = compat.Notes(a.profile, partner)
}

// SetPartnerName names a partner without a profile. No penalties apply.
func (a *Agent) SetPartnerName(name string) {
	a.partner = nil
	a.partnerName = name
	a.penalty = compat.Penalty{}
	a.notes = ""
}

// Profile returns the agent's profile.
func (a *Agent) Profile() *models.Profile { return a.profile }

// State returns the agent's affinity state.
func (a *Agent) State() *affinity.State { return a.state }

// Partner returns the partner profile, or nil when only a name is known.
func (a *Agent) Partner() *models.Profile { return a.partner }

// Penalty returns the memoized partner penalty.
func (a *Agent) Penalty() compat.Penalty { return a.penalty }

// Initiate opens a conversation. The generated delta is clamped to
// [-InitiateDeltaLimit, InitiateDeltaLimit]; no penalties are applied.
func (a *Agent) Initiate(ctx context.Context, day int, setting string) (models.Turn, error) {
	prompt := initiatePrompt(a.parts(day, setting, "", InitiateDeltaLimit))
	raw, err := a.generate(ctx, prompt, a.opts.Temperature, a.opts.MaxTokens)
	if err != nil {
		return models.Turn{}, fmt.Errorf("%s initiating on day %d: %w", a.profile.Name, day, err)
	}

	parsed, perr := llm.ParseTurn(raw)
	if perr != nil {
		return a.fallback(day, "", raw, fmt.Sprintf("initiated on day %d", day), perr), nil
	}

	generated := clamp(parsed.Delta, InitiateDeltaLimit)
	change := models.AffinityChange{Generated: generated, Total: generated}
	emotion := parsed.Emotion
	if emotion == "" {
		emotion = affinity.StartEmotion
	}
	return a.record(day, "", parsed.Message, emotion, parsed.Rationale, change, "",
		fmt.Sprintf("initiated on day %d", day)), nil
}

// Respond answers partnerMessage. The generated delta is clamped to
// [-RespondDeltaLimit, RespondDeltaLimit], the partner penalty is added,
// and the sum is clamped again before it is applied.
func (a *Agent) Respond(ctx context.Context, partnerMessage string, day int, setting string) (models.Turn, error) {
	parts := a.parts(day, setting, partnerMessage, RespondDeltaLimit)
	raw, err := a.generate(ctx, respondPrompt(parts), a.opts.Temperature, a.opts.MaxTokens)
	if err != nil {
		return models.Turn{}, fmt.Errorf("%s responding on day %d: %w", a.profile.Name, day, err)
	}

	note := "responded to: " + truncate(partnerMessage, 50)
	parsed, perr := llm.ParseTurn(raw)
	if perr != nil {
		return a.fallback(day, partnerMessage, raw, note, perr), nil
	}

	generated := clamp(parsed.Delta, RespondDeltaLimit)
	change := models.AffinityChange{
		Generated:     generated,
		Friction:      a.penalty.Friction,
		ValueMismatch: a.penalty.ValueMismatch,
		Dealbreaker:   a.penalty.Dealbreaker,
	}
	change.Total = clamp(generated+a.penalty.Total(), RespondDeltaLimit)

	emotion := parsed.Emotion
	if emotion == "" {
		emotion = fallbackEmotion
	}
	message, question := a.opts.Prober.Maybe(parsed.Message, day)
	return a.record(day, partnerMessage, message, emotion, parsed.Rationale, change, question, note), nil
}

// FinalStatement asks for a short closing assessment after days days.
// It has no effect on the affinity state.
func (a *Agent) FinalStatement(ctx context.Context, days int) (string, error) {
	prompt := finalPrompt(a.partnerName, days, a.state.Level(), a.state.Describe(), a.recentHistory(finalHistoryWindow))
	raw, err := a.generate(ctx, prompt, a.opts.FinalTemperature, a.opts.FinalMaxTokens)
	if err != nil {
		return "", fmt.Errorf("%s final statement: %w", a.profile.Name, err)
	}
	return strings.TrimSpace(raw), nil
}

func (a *Agent) parts(day int, setting, message string, limit int) promptParts {
	return promptParts{
		partner:   a.partnerName,
		day:       day,
		context:   setting,
		emotion:   a.state.Emotion(),
		level:     a.state.Level(),
		describe:  a.state.Describe(),
		tone:      tone.For(a.state.Emotion(), a.state.Level()).Instruction(),
		framing:   tone.Framing(a.lastRationale, a.lastDelta),
		notes:     a.notes,
		history:   a.recentHistory(historyWindow),
		message:   message,
		deltaLow:  -limit,
		deltaHigh: limit,
	}
}

func (a *Agent) generate(ctx context.Context, prompt string, temperature float64, limit int) (string, error) {
	a.logger.Log(ctx, logging.LevelTrace, "generation request", "prompt", prompt)
	raw, err := a.client.Generate(ctx, llm.Request{
		System:      a.system,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   limit,
	})
	if err != nil {
		return "", err
	}
	a.logger.Log(ctx, logging.LevelTrace, "generation response", "response", raw)
	return raw, nil
}

// fallback records a turn for text that could not be parsed: the raw text
// is the message, the emotion is neutral, and the delta is zero.
func (a *Agent) fallback(day int, partnerMessage, raw, note string, cause error) models.Turn {
	msg := strings.TrimSpace(raw)
	if msg == "" {
		msg = "..."
	}
	a.logger.Warn("unparsable generation, using raw text", "day", day, "error", cause)
	turn := a.record(day, partnerMessage, msg, fallbackEmotion, "", models.AffinityChange{}, "", note+" (fallback)")
	turn.Fallback = true
	return turn
}

func (a *Agent) record(day int, partnerMessage, message, emotion, rationale string, change models.AffinityChange, question, note string) models.Turn {
	a.state.Update(emotion, change.Total, note)
	a.history = append(a.history, exchange{partnerMessage: partnerMessage, message: message})
	a.lastRationale = rationale
	a.lastDelta = change.Total

	turn := models.Turn{
		Day:             day,
		Sender:          a.profile.Name,
		SenderID:        a.profile.ID,
		Message:         message,
		Emotion:         emotion,
		InternalThought: rationale,
		AffinityChange:  change,
		AffinityLevel:   a.state.Level(),
		ProbeQuestion:   question,
		Timestamp:       a.opts.Now(),
	}
	a.opts.Trace.Log("turn", map[string]any{
		"day":             day,
		"sender":          a.profile.ID,
		"emotion":         emotion,
		"affinity_change": change,
		"affinity_level":  turn.AffinityLevel,
		"probe":           question != "",
	})
	return turn
}

func (a *Agent) recentHistory(n int) string {
	if len(a.history) == 0 {
		return "No previous conversation."
	}
	start := len(a.history) - n
	if start < 0 {
		start = 0
	}
	var lines []string
	for _, e := range a.history[start:] {
		if e.partnerMessage != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", a.partnerName, e.partnerMessage))
		}
		lines = append(lines, "You: "+e.message)
	}
	return strings.Join(lines, "\n")
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
