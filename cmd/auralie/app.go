package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/config"
	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/logging"
	"github.com/nvandessel/auralie/internal/simulation"
	"github.com/nvandessel/auralie/internal/store"
)

// app bundles what every command needs after configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	home    string
	jsonOut bool
}

// loadApp loads and validates configuration, honoring --config and
// --log-level.
func loadApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	home, err := cfg.HomeDir()
	if err != nil {
		return nil, err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	return &app{
		cfg:     cfg,
		logger:  logging.NewLoggerFormat(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr()),
		home:    home,
		jsonOut: jsonOut,
	}, nil
}

func (a *app) profileStore() (*store.DirProfileStore, error) {
	dir, err := a.cfg.ProfilesDir()
	if err != nil {
		return nil, err
	}
	return store.NewDirProfileStore(dir), nil
}

func (a *app) resultStore(ctx context.Context) (store.ResultStore, error) {
	opts, err := a.cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	rs, err := store.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}
	return rs, nil
}

// client builds the configured LLM client, throttled and retried.
func (a *app) client(ctx context.Context) (llm.Client, error) {
	if err := a.cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	c, err := llm.NewClient(ctx, a.cfg.LLMClientConfig())
	if err != nil {
		return nil, err
	}
	if a.cfg.LLM.MinInterval > 0 {
		c = llm.NewThrottle(c, a.cfg.LLM.MinInterval)
	}
	if a.cfg.LLM.MaxRetries > 0 {
		c = llm.NewRetry(c, a.cfg.RetryConfig(), a.logger)
	}
	return c, nil
}

// trace opens the JSONL trace log under the data root. It is nil below
// debug verbosity.
func (a *app) trace() *logging.TraceLogger {
	return logging.NewTraceLogger(a.home, a.cfg.Logging.Level)
}

// runner assembles a simulation.Runner. The caller closes the returned
// store and trace logger.
func (a *app) runner(ctx context.Context, simCfg simulation.Config) (simulation.Runner, store.ResultStore, error) {
	client, err := a.client(ctx)
	if err != nil {
		return simulation.Runner{}, nil, err
	}
	results, err := a.resultStore(ctx)
	if err != nil {
		return simulation.Runner{}, nil, err
	}
	return simulation.Runner{
		Config:  simCfg,
		Client:  client,
		Results: results,
		Logger:  a.logger,
		Trace:   a.trace(),
	}, results, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
