package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/simulation"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Simulate random pairings of stored profiles",
		Long: `Draw random distinct pairings from the profile directory and simulate
them concurrently. A failed pairing does not stop the others.

Examples:
  auralie batch --pairs 5 --workers 2
  auralie batch --pairs 10 --days 3 --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			n, _ := cmd.Flags().GetInt("pairs")
			workers, _ := cmd.Flags().GetInt("workers")
			if workers <= 0 {
				workers = a.cfg.Batch.Workers
			}

			profiles, err := a.profileStore()
			if err != nil {
				return err
			}
			all, err := profiles.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}
			if len(all) < 2 {
				return errors.New("batch needs at least two profiles; run 'auralie profiles seed'")
			}

			simCfg := applySimulationFlags(cmd, a.cfg.SimulationConfig())
			seed := simCfg.Seed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			pairs := simulation.RandomPairs(all, n, rand.New(rand.NewPCG(seed, seed>>1)))

			runner, results, err := a.runner(ctx, simCfg)
			if err != nil {
				return err
			}
			defer results.Close()
			defer runner.Trace.Close()

			if !a.jsonOut {
				fmt.Fprintf(cmd.ErrOrStderr(), "Simulating %d pairing(s) with %d worker(s)...\n", len(pairs), workers)
			}
			out, batchErr := simulation.RunBatch(ctx, runner, pairs, workers)

			failed := 0
			for _, br := range out {
				if br.Err != nil {
					failed++
				}
			}

			if a.jsonOut {
				type row struct {
					Person1ID string `json:"person1_id"`
					Person2ID string `json:"person2_id"`
					ID        string `json:"id,omitempty"`
					Status    string `json:"status,omitempty"`
					Rating    string `json:"rating,omitempty"`
					Score     any    `json:"score,omitempty"`
					Error     string `json:"error,omitempty"`
				}
				rows := make([]row, 0, len(out))
				for _, br := range out {
					r := row{Person1ID: br.Pair.A.ID, Person2ID: br.Pair.B.ID}
					if br.Result != nil {
						r.ID = br.Result.ID
						r.Status = string(br.Result.Status)
						if c := br.Result.Compatibility; c != nil {
							r.Rating, r.Score = c.Rating, c.Score
						}
					}
					if br.Err != nil {
						r.Error = br.Err.Error()
					}
					rows = append(rows, r)
				}
				if err := writeJSON(cmd.OutOrStdout(), map[string]any{
					"results": rows, "count": len(rows), "failed": failed,
				}); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "PAIR\tVERDICT\tSCORE\tID")
				for _, br := range out {
					pair := br.Pair.A.Name + " & " + br.Pair.B.Name
					switch {
					case br.Err != nil:
						fmt.Fprintf(tw, "%s\tfailed\t-\t%s\n", pair, br.Err)
					case br.Result.Compatibility != nil:
						fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n", pair, br.Result.Compatibility.Rating, br.Result.Compatibility.Score, br.Result.ID)
					}
				}
				tw.Flush()
			}

			if batchErr != nil {
				return batchErr
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d simulations failed", failed, len(out))
			}
			return nil
		},
	}
	simulationFlags(cmd)
	cmd.Flags().Int("pairs", 5, "Number of random pairings")
	cmd.Flags().Int("workers", 0, "Concurrent simulations (default from config)")
	return cmd
}
