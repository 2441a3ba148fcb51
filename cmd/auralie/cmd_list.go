package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/store"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored simulations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			results, err := a.resultStore(cmd.Context())
			if err != nil {
				return err
			}
			defer results.Close()

			summaries, err := results.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list simulations: %w", err)
			}
			if status, _ := cmd.Flags().GetString("status"); status != "" {
				var filtered []models.Summary
				for _, s := range summaries {
					if string(s.Status) == status {
						filtered = append(filtered, s)
					}
				}
				summaries = filtered
			}

			if fr, ok := results.(*store.FileResultStore); ok {
				for _, le := range fr.LoadErrors {
					a.logger.Warn("skipped unreadable result", "file", le.File, "error", le.Error)
				}
			}

			if a.jsonOut {
				if summaries == nil {
					summaries = []models.Summary{}
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"simulations": summaries, "count": len(summaries),
				})
			}
			printSummaries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}
	cmd.Flags().String("status", "", "Only list simulations with this status")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <simulation-id>",
		Short: "Show a stored simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			results, err := a.resultStore(cmd.Context())
			if err != nil {
				return err
			}
			defer results.Close()

			res, err := results.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load simulation %s: %w", args[0], err)
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			transcript, _ := cmd.Flags().GetBool("transcript")
			printResult(cmd.OutOrStdout(), res, transcript)
			return nil
		},
	}
	cmd.Flags().Bool("transcript", false, "Print every message")
	return cmd
}
