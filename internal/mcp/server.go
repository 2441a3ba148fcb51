// Package mcp provides an MCP (Model Context Protocol) server for auralie.
// Agents can start simulations, poll their status, and read results.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/auralie/internal/logging"
	"github.com/nvandessel/auralie/internal/ratelimit"
	"github.com/nvandessel/auralie/internal/simulation"
	"github.com/nvandessel/auralie/internal/store"
)

// Server wraps the MCP SDK server and the simulation pool it drives.
type Server struct {
	server       *sdk.Server
	pool         *simulation.Pool
	results      store.ResultStore
	profiles     store.ProfileStore
	toolLimiters ratelimit.ToolLimiters
	auditLogger  *AuditLogger
	logger       *slog.Logger

	closeOnce sync.Once
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "auralie")
	Version string // Server version

	// Runner is shared by every simulation started through the server.
	// Runner.Results is also used to answer status and get calls.
	Runner simulation.Runner

	Profiles store.ProfileStore

	// Workers bounds concurrently running simulations.
	Workers int

	// AuditDir receives audit.jsonl. Empty disables the audit log.
	AuditDir string

	Logger *slog.Logger
}

// NewServer creates a new MCP server with auralie tools.
func NewServer(cfg *Config) (*Server, error) {
	if cfg.Runner.Client == nil {
		return nil, errors.New("mcp server requires an llm client")
	}
	if cfg.Runner.Results == nil {
		return nil, errors.New("mcp server requires a result store")
	}
	if cfg.Profiles == nil {
		return nil, errors.New("mcp server requires a profile store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logging.Component(logger, "mcp")

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("client initialized")
		},
	})

	s := &Server{
		server:       mcpServer,
		pool:         simulation.NewPool(cfg.Runner, cfg.Workers),
		results:      cfg.Runner.Results,
		profiles:     cfg.Profiles,
		toolLimiters: ratelimit.NewToolLimiters(),
		logger:       logger,
	}
	if cfg.AuditDir != "" {
		s.auditLogger = NewAuditLogger(cfg.AuditDir)
	}

	s.registerTools()
	return s, nil
}

// Run serves over stdio until the client disconnects or ctx is cancelled.
// Running simulations are cancelled on return.
func (s *Server) Run(ctx context.Context) error {
	err := s.server.Run(ctx, &sdk.StdioTransport{})
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Close cancels running simulations and closes the audit log. The result
// store belongs to the caller. Safe to call more than once.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.pool.Close()
		err = s.auditLogger.Close()
	})
	return err
}
