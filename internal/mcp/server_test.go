package mcp

import (
	"testing"

	"github.com/nvandessel/auralie/internal/llm"
	"github.com/nvandessel/auralie/internal/ratelimit"
	"github.com/nvandessel/auralie/internal/simulation"
	"github.com/nvandessel/auralie/internal/store"
)

const mockTurn = `{"message": "Ha, tell me more", "emotion": "happy", "internal_thought": "", "fondness_change": 2}`

// setupTestServer returns a server over memory stores seeded with the
// sample profiles. Simulations are one day long and fully deterministic.
func setupTestServer(t *testing.T) (*Server, *store.MemoryResultStore) {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Days = 1
	cfg.EnableActivities = false
	cfg.ProbeChance = 0
	cfg.DateSuggestions = false
	cfg.Seed = 3

	results := store.NewMemoryResultStore()
	server, err := NewServer(&Config{
		Name:    "test-server",
		Version: "v1.0.0",
		Runner: simulation.Runner{
			Config:  cfg,
			Client:  llm.NewMockClient().WithDefault(mockTurn),
			Results: results,
		},
		Profiles: store.NewMemoryProfileStore(store.SampleProfiles()...),
		Workers:  2,
		AuditDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	// Handler tests make more calls than the default bursts allow;
	// tests that exercise limiting install their own.
	server.toolLimiters = generousLimiters()
	t.Cleanup(func() { server.Close() })
	return server, results
}

func generousLimiters() ratelimit.ToolLimiters {
	limits := make(ratelimit.ToolLimiters)
	for _, tool := range []string{
		ratelimit.ToolSimulationStart,
		ratelimit.ToolSimulationStatus,
		ratelimit.ToolSimulationGet,
		ratelimit.ToolSimulationList,
		ratelimit.ToolProfileList,
	} {
		limits[tool] = ratelimit.NewLimiter(1000, 1000)
	}
	return limits
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.server == nil {
		t.Error("Server.server is nil")
	}
	if server.pool == nil {
		t.Error("Server.pool is nil")
	}
	if server.auditLogger == nil {
		t.Error("expected auditLogger to be initialized")
	}
	if len(server.toolLimiters) != 5 {
		t.Errorf("toolLimiters = %d, want 5", len(server.toolLimiters))
	}
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	full := func() *Config {
		return &Config{
			Runner: simulation.Runner{
				Client:  llm.NewMockClient(),
				Results: store.NewMemoryResultStore(),
			},
			Profiles: store.NewMemoryProfileStore(),
		}
	}
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no client", func(c *Config) { c.Runner.Client = nil }},
		{"no results", func(c *Config) { c.Runner.Results = nil }},
		{"no profiles", func(c *Config) { c.Profiles = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full()
			tt.mutate(cfg)
			if _, err := NewServer(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestClose(t *testing.T) {
	server, _ := setupTestServer(t)

	if err := server.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	// Multiple closes should be safe
	if err := server.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
}
