package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/mcp"
)

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Serve auralie tools over MCP (stdio)",
		Long: `Run an MCP server on stdin/stdout so agents can start simulations,
poll their status and read results.

Tools: simulation_start, simulation_status, simulation_get,
simulation_list, profile_list.

Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
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
			runner, results, err := a.runner(ctx, a.cfg.SimulationConfig())
			if err != nil {
				return err
			}
			defer results.Close()
			defer runner.Trace.Close()

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "auralie",
				Version:  version,
				Runner:   runner,
				Profiles: profiles,
				Workers:  a.cfg.Batch.Workers,
				AuditDir: a.home,
				Logger:   a.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			a.logger.Info("mcp server starting", "provider", a.cfg.LLM.Provider, "storage", a.cfg.Storage.Backend)
			return server.Run(ctx)
		},
	}
}
