package simulation

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/logging"
	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/store"
)

// Runner holds what every orchestrator in a batch shares.
type Runner struct {
	Config  Config
	Client  llm.Client
	Results store.ResultStore
	Logger  *slog.Logger
	Trace   *logging.TraceLogger
}

// New returns a fresh orchestrator. seedOffset distinguishes runs when
// Config.Seed is fixed.
func (r Runner) New(seedOffset uint64) *Orchestrator {
	cfg := r.Config
	if cfg.Seed != 0 {
		cfg.Seed += seedOffset
	}
	return New(cfg, r.Client, r.Results, r.Logger, r.Trace)
}

// Pair is one pairing to simulate.
type Pair struct {
	A, B *models.Profile
}

// BatchResult is the outcome of one pairing. Result may be set even when
// Err is non-nil if the simulation failed partway.
type BatchResult struct {
	Pair   Pair
	Result *models.SimulationResult
	Err    error
}

// RunBatch simulates pairs concurrently with at most workers in flight.
// Each pairing gets its own orchestrator; a failed pairing does not stop
// the others. The returned slice is in the order of pairs. The error is
// non-nil only if ctx is done before every pairing was started.
func RunBatch(ctx context.Context, r Runner, pairs []Pair, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]BatchResult, len(pairs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(pairs); j++ {
				out[j] = BatchResult{Pair: pairs[j], Err: err}
			}
			g.Wait()
			return out, err
		}
		g.Go(func() error {
			res, err := r.New(uint64(i)*1000).Run(ctx, p.A, p.B)
			out[i] = BatchResult{Pair: p, Result: res, Err: err}
			return nil
		})
	}
	g.Wait()
	return out, nil
}

// RandomPairs draws up to n distinct unordered pairings of profiles. The
// order within each pair is also randomized.
func RandomPairs(profiles []*models.Profile, n int, rng *rand.Rand) []Pair {
	var all []Pair
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			all = append(all, Pair{A: profiles[i], B: profiles[j]})
		}
	}
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if n < len(all) {
		all = all[:n]
	}
	for i := range all {
		if rng.IntN(2) == 1 {
			all[i].A, all[i].B = all[i].B, all[i].A
		}
	}
	return all
}
