package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect auralie configuration",
		Long: `Show the effective configuration after merging defaults,
~/.auralie/config.yaml (or --config), .env and environment variables.

Examples:
  auralie config show
  LLM_PROVIDER=ollama auralie config show --json`,
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			cfg := a.cfg

			if a.jsonOut {
				// Redact API key before JSON serialization to prevent leakage
				redacted := *cfg
				redacted.LLM.APIKey = cfg.LLM.RedactedAPIKey()
				return writeJSON(cmd.OutOrStdout(), redacted)
			}

			w := cmd.OutOrStdout()
			opts, err := cfg.StoreOptions()
			if err != nil {
				return err
			}
			profilesDir, err := cfg.ProfilesDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Data root: %s\n\n", a.home)
			fmt.Fprintln(w, "LLM Settings:")
			fmt.Fprintf(w, "  llm.provider:      %s\n", cfg.LLM.Provider)
			fmt.Fprintf(w, "  llm.api_key:       %s\n", valueOrDefault(cfg.LLM.RedactedAPIKey(), "(not set)"))
			fmt.Fprintf(w, "  llm.base_url:      %s\n", valueOrDefault(cfg.LLM.BaseURL, "(default)"))
			fmt.Fprintf(w, "  llm.model:         %s\n", valueOrDefault(cfg.LLM.Model, "(default)"))
			fmt.Fprintf(w, "  llm.timeout:       %v\n", cfg.LLM.Timeout)
			fmt.Fprintf(w, "  llm.min_interval:  %v\n", cfg.LLM.MinInterval)
			fmt.Fprintf(w, "  llm.max_retries:   %d\n", cfg.LLM.MaxRetries)
			fmt.Fprintf(w, "  llm.temperature:   %.2f\n", cfg.LLM.Temperature)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Simulation Settings:")
			fmt.Fprintf(w, "  simulation.days:              %d\n", cfg.Simulation.Days)
			fmt.Fprintf(w, "  simulation.exchanges:         %d\n", cfg.Simulation.Exchanges)
			fmt.Fprintf(w, "  simulation.enable_activities: %v\n", cfg.Simulation.EnableActivities)
			fmt.Fprintf(w, "  simulation.activity_days:     %v\n", cfg.Simulation.ActivityDays)
			fmt.Fprintf(w, "  simulation.starting_affinity: %d\n", cfg.Simulation.StartingAffinity)
			fmt.Fprintf(w, "  simulation.save_every:        %d\n", cfg.Simulation.SaveEvery)
			fmt.Fprintf(w, "  simulation.probe_chance:      %.2f\n", cfg.Simulation.ProbeChance)
			fmt.Fprintf(w, "  simulation.date_suggestions:  %v\n", cfg.Simulation.DateSuggestions)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Storage Settings:")
			fmt.Fprintf(w, "  storage.backend:   %s\n", opts.Backend)
			switch opts.Backend {
			case "sqlite":
				fmt.Fprintf(w, "  storage.sqlite_path: %s\n", opts.SQLitePath)
			case "redis":
				fmt.Fprintf(w, "  storage.redis_addr:   %s\n", opts.RedisAddr)
				fmt.Fprintf(w, "  storage.redis_prefix: %s\n", opts.RedisPrefix)
			default:
				fmt.Fprintf(w, "  storage.dir:       %s\n", opts.Dir)
			}
			fmt.Fprintf(w, "  profiles.dir:      %s\n", profilesDir)
			fmt.Fprintf(w, "  batch.workers:     %d\n", cfg.Batch.Workers)
			fmt.Fprintf(w, "  logging.level:     %s\n", cfg.Logging.Level)
			return nil
		},
	}
}
