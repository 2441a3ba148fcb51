package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/nvandessel/auralie/internal/activity"
	"github.com/nvandessel/auralie/internal/compat"
	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/logging"
	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/persona"
	"github.com/nvandessel/auralie/internal/store"
)

// ErrAlreadyRun is returned when Run is called on an orchestrator that
// has already left the pending state.
var ErrAlreadyRun = errors.New("simulation already run")

const activityRounds = 4

// Orchestrator runs one simulation between two profiles. It is single use:
// the first Run moves it out of pending and later calls fail.
type Orchestrator struct {
	cfg     Config
	client  llm.Client
	results store.ResultStore
	logger  *slog.Logger
	trace   *logging.TraceLogger

	// Now stamps turns and result times. Defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	status models.Status
	id     string

	a, b *persona.Agent
	rng  *rand.Rand
}

// New creates an orchestrator. results may be nil, in which case nothing
// is persisted; trace may be nil.
func New(cfg Config, client llm.Client, results store.ResultStore, logger *slog.Logger, trace *logging.TraceLogger) *Orchestrator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Orchestrator{
		cfg:     cfg,
		client:  client,
		results: results,
		logger:  logging.Component(logger, "simulation"),
		trace:   trace,
		Now:     time.Now,
		status:  models.StatusPending,
	}
}

// Status returns the current lifecycle state.
func (o *Orchestrator) Status() models.Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// ID returns the simulation ID once Run has started, or "".
func (o *Orchestrator) ID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.id
}

func (o *Orchestrator) setStatus(s models.Status) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// Run simulates the configured number of days between a and b.
//
// On a day failure the returned result holds only the fully completed days,
// has status failed, and has been persisted; the error wraps the cause and
// any persistence error. A returned result is never nil once validation of
// the inputs has passed.
func (o *Orchestrator) Run(ctx context.Context, a, b *models.Profile) (*models.SimulationResult, error) {
	o.mu.Lock()
	if o.status != models.StatusPending {
		o.mu.Unlock()
		return nil, ErrAlreadyRun
	}
	o.status = models.StatusInProgress
	o.mu.Unlock()

	if err := o.validate(a, b); err != nil {
		o.setStatus(models.StatusFailed)
		return nil, err
	}

	start := o.Now()
	result := &models.SimulationResult{
		ID: NewID(a, b, start),
		Participants: models.Participants{
			Person1: a.Name, Person2: b.Name,
			Person1ID: a.ID, Person2ID: b.ID,
		},
		StartTime: start,
		Days:      []models.DayLog{},
		Status:    models.StatusInProgress,
	}
	o.mu.Lock()
	o.id = result.ID
	o.mu.Unlock()
	o.setup(a, b)

	logger := o.logger.With("simulation", result.ID)
	logger.Info("simulation started", "person1", a.ID, "person2", b.ID, "days", o.cfg.Days)

	for day := 1; day <= o.cfg.Days; day++ {
		if err := ctx.Err(); err != nil {
			return o.fail(ctx, result, fmt.Sprintf("on day %d", day), err)
		}
		log, err := o.runDay(ctx, day)
		if err != nil {
			return o.fail(ctx, result, fmt.Sprintf("on day %d", day), err)
		}
		result.Days = append(result.Days, log)
		result.CompletedDays = day
		logger.Debug("day completed", "day", day,
			"affinity1", o.a.State().Level(), "affinity2", o.b.State().Level())
		o.trace.Log("day", map[string]any{
			"simulation": result.ID,
			"day":        day,
			"affinity1":  o.a.State().Level(),
			"affinity2":  o.b.State().Level(),
		})

		if o.cfg.SaveEvery > 0 && day%o.cfg.SaveEvery == 0 && day < o.cfg.Days {
			if err := o.persist(ctx, result); err != nil {
				logger.Warn("checkpoint failed", "day", day, "error", err)
			}
		}
	}

	if err := o.finish(ctx, result, a, b); err != nil {
		return o.fail(ctx, result, "during final assessment", err)
	}
	logger.Info("simulation completed",
		"rating", result.Compatibility.Rating, "score", result.Compatibility.Score)

	o.setStatus(models.StatusCompleted)
	if err := o.persist(ctx, result); err != nil {
		return result, fmt.Errorf("simulation %s completed but could not be saved: %w", result.ID, err)
	}
	return result, nil
}

func (o *Orchestrator) validate(a, b *models.Profile) error {
	if err := o.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	if a == nil || b == nil {
		return fmt.Errorf("two profiles are required")
	}
	for _, p := range []*models.Profile{a, b} {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if a.ID == b.ID {
		return fmt.Errorf("cannot simulate profile %s with itself", a.ID)
	}
	return nil
}

func (o *Orchestrator) setup(a, b *models.Profile) {
	seed := o.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	start := o.cfg.StartingAffinity
	opts := func(s uint64) persona.Options {
		return persona.Options{
			StartingAffinity: &start,
			Prober:           compat.NewSeededProber(s, o.cfg.ProbeChance),
			Temperature:      o.cfg.Temperature,
			Logger:           o.logger,
			Trace:            o.trace,
			Now:              o.Now,
		}
	}
	o.a = persona.New(a, o.client, opts(seed+1))
	o.b = persona.New(b, o.client, opts(seed+2))

	pen := compat.Pair(a, b)
	o.a.SetPartner(b, pen.A)
	o.b.SetPartner(a, pen.B)
	o.logger.Debug("pair penalties", "person1", pen.A, "person2", pen.B)
}

func (o *Orchestrator) runDay(ctx context.Context, day int) (models.DayLog, error) {
	log := models.DayLog{
		Day:             day,
		TextingSessions: []models.TextingSession{},
		Activities:      []models.ActivityLog{},
	}

	morning, err := o.texting(ctx, day, activity.Morning)
	if err != nil {
		return log, err
	}
	log.TextingSessions = append(log.TextingSessions, morning)

	if o.cfg.activityOn(day) {
		avg := (o.a.State().Level() + o.b.State().Level()) / 2
		act := activity.Select(day, avg, o.rng)
		alog, err := o.activity(ctx, day, act)
		if err != nil {
			return log, err
		}
		log.Activities = append(log.Activities, alog)
	}

	evening, err := o.texting(ctx, day, activity.Evening)
	if err != nil {
		return log, err
	}
	log.TextingSessions = append(log.TextingSessions, evening)
	return log, nil
}

// texting runs one session: the initiator opens, then each round the
// responder answers and the initiator answers back, except after the last
// round.
func (o *Orchestrator) texting(ctx context.Context, day int, timeOfDay string) (models.TextingSession, error) {
	session := models.TextingSession{Time: timeOfDay}
	setting := "texting - " + activity.TextingContext(day, timeOfDay)

	initiator, responder := o.a, o.b
	if timeOfDay == activity.Evening {
		initiator, responder = o.b, o.a
	}

	turn, err := initiator.Initiate(ctx, day, setting)
	if err != nil {
		return session, err
	}
	session.Exchanges = append(session.Exchanges, labeled(turn, timeOfDay))

	for i := 0; i < o.cfg.Exchanges; i++ {
		turn, err = responder.Respond(ctx, turn.Message, day, setting)
		if err != nil {
			return session, err
		}
		session.Exchanges = append(session.Exchanges, labeled(turn, timeOfDay))

		if i < o.cfg.Exchanges-1 {
			turn, err = initiator.Respond(ctx, turn.Message, day, setting)
			if err != nil {
				return session, err
			}
			session.Exchanges = append(session.Exchanges, labeled(turn, timeOfDay))
		}
	}
	return session, nil
}

// activity runs a shared activity. The first participant opens; in each
// later round the second responds and the first answers, except in the
// last round.
func (o *Orchestrator) activity(ctx context.Context, day int, act models.Activity) (models.ActivityLog, error) {
	alog := models.ActivityLog{Activity: act}
	setting := activity.Label(act)

	turn, err := o.a.Initiate(ctx, day, setting)
	if err != nil {
		return alog, err
	}
	alog.Interactions = append(alog.Interactions, labeled(turn, act.Name))

	for round := 1; round < activityRounds; round++ {
		turn, err = o.b.Respond(ctx, turn.Message, day, setting)
		if err != nil {
			return alog, err
		}
		alog.Interactions = append(alog.Interactions, labeled(turn, act.Name))

		if round < activityRounds-1 {
			turn, err = o.a.Respond(ctx, turn.Message, day, setting)
			if err != nil {
				return alog, err
			}
			alog.Interactions = append(alog.Interactions, labeled(turn, act.Name))
		}
	}
	return alog, nil
}

func labeled(t models.Turn, label string) models.Turn {
	t.Label = label
	return t
}

func (o *Orchestrator) finish(ctx context.Context, result *models.SimulationResult, a, b *models.Profile) error {
	s1, err := o.a.FinalStatement(ctx, o.cfg.Days)
	if err != nil {
		return err
	}
	s2, err := o.b.FinalStatement(ctx, o.cfg.Days)
	if err != nil {
		return err
	}
	l1, l2 := o.a.State().Level(), o.b.State().Level()
	result.FinalAssessment = map[string]models.FinalAssessment{
		a.ID: {Name: a.Name, Statement: s1, FinalAffinity: l1},
		b.ID: {Name: b.Name, Statement: s2, FinalAffinity: l2},
	}
	score := Score(l1, l2)
	result.Compatibility = &models.Compatibility{Rating: Verdict(score), Score: score}

	if o.cfg.DateSuggestions {
		suggestions, err := DateSuggestions(ctx, o.client, a, b, result.Days)
		if err != nil {
			o.logger.Warn("date suggestions unavailable, using defaults", "simulation", result.ID, "error", err)
		}
		result.DateSuggestions = suggestions
	}

	end := o.Now()
	result.EndTime = &end
	result.Status = models.StatusCompleted
	return nil
}

// fail records err against result, persists it, and returns the combined
// error. Only fully completed days are kept. stage names where the run
// stopped, e.g. "on day 3".
func (o *Orchestrator) fail(ctx context.Context, result *models.SimulationResult, stage string, cause error) (*models.SimulationResult, error) {
	o.setStatus(models.StatusFailed)

	result.Status = models.StatusFailed
	result.Error = cause.Error()
	result.CompletedDays = len(result.Days)
	result.FinalAssessment = nil
	result.Compatibility = nil
	result.DateSuggestions = nil
	end := o.Now()
	result.EndTime = &end

	o.logger.Error("simulation failed", "simulation", result.ID, "stage", stage,
		"completed_days", result.CompletedDays, "error", cause)

	runErr := fmt.Errorf("simulation %s failed %s: %w", result.ID, stage, cause)
	// Persist even when the run was cancelled; the checkpoint is the only
	// record of the partial result.
	if err := o.persist(context.WithoutCancel(ctx), result); err != nil {
		return result, errors.Join(runErr, fmt.Errorf("saving partial result: %w", err))
	}
	return result, runErr
}

func (o *Orchestrator) persist(ctx context.Context, result *models.SimulationResult) error {
	if o.results == nil {
		return nil
	}
	if err := o.results.Save(ctx, result); err != nil {
		return err
	}
	o.logger.Debug("result saved", "simulation", result.ID,
		"status", result.Status, "completed_days", result.CompletedDays)
	o.trace.Log("persist", map[string]any{
		"simulation":     result.ID,
		"status":         string(result.Status),
		"completed_days": result.CompletedDays,
	})
	return nil
}
