package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/simulation"
)

// simulationFlags registers the per-run overrides shared by run and batch.
func simulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("days", 0, "Number of simulated days (default from config)")
	cmd.Flags().Bool("no-activities", false, "Skip in-person activities")
	cmd.Flags().Bool("no-suggestions", false, "Skip date suggestions after completion")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible probing and activity choice")
}

func applySimulationFlags(cmd *cobra.Command, cfg simulation.Config) simulation.Config {
	if days, _ := cmd.Flags().GetInt("days"); days > 0 {
		cfg.Days = days
	}
	if off, _ := cmd.Flags().GetBool("no-activities"); off {
		cfg.EnableActivities = false
	}
	if off, _ := cmd.Flags().GetBool("no-suggestions"); off {
		cfg.DateSuggestions = false
	}
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	return cfg
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <profile-a> <profile-b>",
		Short: "Simulate a week between two profiles",
		Long: `Simulate a week of texting and activities between two profiles and
print the compatibility verdict.

Profiles are looked up by ID in the profile directory. Run
'auralie profiles seed' to install the sample profiles.

Examples:
  auralie run david_chen clare_martinez
  auralie run david_chen clare_martinez --days 3 --transcript
  auralie run maya_patel jordan_lee --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			profiles, err := a.profileStore()
			if err != nil {
				return err
			}
			p1, err := profiles.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load profile %s: %w", args[0], err)
			}
			p2, err := profiles.Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to load profile %s: %w", args[1], err)
			}

			runner, results, err := a.runner(ctx, applySimulationFlags(cmd, a.cfg.SimulationConfig()))
			if err != nil {
				return err
			}
			defer results.Close()
			defer runner.Trace.Close()

			if !a.jsonOut {
				fmt.Fprintf(cmd.ErrOrStderr(), "Simulating %d day(s) between %s and %s...\n", runner.Config.Days, p1.Name, p2.Name)
			}
			res, runErr := runner.New(0).Run(ctx, p1, p2)
			if res != nil {
				if a.jsonOut {
					if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
						return err
					}
				} else {
					transcript, _ := cmd.Flags().GetBool("transcript")
					printResult(cmd.OutOrStdout(), res, transcript)
				}
			}
			return runErr
		},
	}
	simulationFlags(cmd)
	cmd.Flags().Bool("transcript", false, "Print every message")
	return cmd
}
