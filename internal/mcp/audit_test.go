package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAuditLogger_NilSafety(t *testing.T) {
	var logger *AuditLogger
	// Should not panic
	logger.Log(AuditEntry{Tool: "test"})
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on nil logger returned error: %v", err)
	}
}

func readAudit(t *testing.T, dir string) []AuditEntry {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("opening audit log: %v", err)
	}
	defer f.Close()

	var entries []AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("parsing audit entry %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestAuditLogger_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	logger := NewAuditLogger(dir)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	logger.Log(AuditEntry{Timestamp: time.Now(), Tool: "simulation_get", DurationMs: 42, Status: "success"})
	logger.Log(AuditEntry{Timestamp: time.Now(), Tool: "simulation_start", Status: "error", Error: "rate limited"})
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	// Writes after Close are dropped.
	logger.Log(AuditEntry{Tool: "late"})

	entries := readAudit(t, dir)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Tool != "simulation_get" || entries[0].DurationMs != 42 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Status != "error" || entries[1].Error != "rate limited" {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestAuditLogger_Concurrent(t *testing.T) {
	dir := t.TempDir()
	logger := NewAuditLogger(dir)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Log(AuditEntry{Tool: "simulation_status", Status: "success"})
		}()
	}
	wg.Wait()
	logger.Close()

	if n := len(readAudit(t, dir)); n != 50 {
		t.Errorf("entries = %d, want 50", n)
	}
}

func TestSanitizeToolParams(t *testing.T) {
	got := sanitizeToolParams(map[string]any{
		"person1_id":   "david_chen",
		"person2_id":   "",
		"include_days": true,
		"limit":        5,
		"free_text":    "secret",
	})

	want := map[string]string{
		"person1_id":   "(set)",
		"include_days": "true",
		"limit":        "5",
		"_param_count": "5",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if sanitizeToolParams(nil) != nil {
		t.Error("nil params should yield nil")
	}
}

func TestServer_AuditsToolCalls(t *testing.T) {
	dir := t.TempDir()
	server, _ := setupTestServer(t)
	server.auditLogger.Close()
	server.auditLogger = NewAuditLogger(dir)

	ctx := context.Background()
	server.handleProfileList(ctx, nil, ProfileListInput{})
	server.handleSimulationStart(ctx, nil, SimulationStartInput{Person1ID: "david_chen", Person2ID: "nobody"})
	server.auditLogger.Close()

	entries := readAudit(t, dir)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Tool != "profile_list" || entries[0].Status != "success" {
		t.Errorf("profile_list entry = %+v", entries[0])
	}
	start := entries[1]
	if start.Tool != "simulation_start" || start.Status != "error" {
		t.Errorf("simulation_start entry = %+v", start)
	}
	raw, _ := json.Marshal(start.Params)
	if strings.Contains(string(raw), "david_chen") {
		t.Errorf("audit params leaked a profile id: %s", raw)
	}
}
