package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/ratelimit"
)

func TestHandleSimulationStart_RunsToCompletion(t *testing.T) {
	server, results := setupTestServer(t)
	ctx := context.Background()

	result, out, err := server.handleSimulationStart(ctx, nil, SimulationStartInput{
		Person1ID: "david_chen",
		Person2ID: "clare_martinez",
	})
	if err != nil {
		t.Fatalf("handleSimulationStart failed: %v", err)
	}
	if result != nil {
		t.Error("Expected nil result (SDK auto-populates)")
	}
	if out.JobID == "" || out.Status != models.StatusPending {
		t.Fatalf("unexpected output: %+v", out)
	}
	if !strings.Contains(out.Message, "David Chen") {
		t.Errorf("Message = %q", out.Message)
	}

	server.pool.Wait()

	_, status, err := server.handleSimulationStatus(ctx, nil, SimulationStatusInput{JobID: out.JobID})
	if err != nil {
		t.Fatalf("handleSimulationStatus failed: %v", err)
	}
	if status.Status != models.StatusCompleted {
		t.Fatalf("Status = %s (%s), want completed", status.Status, status.Error)
	}
	if status.CompletedDays != 1 || status.Compatibility == nil {
		t.Errorf("incomplete status: %+v", status)
	}
	if _, err := results.Get(ctx, status.SimulationID); err != nil {
		t.Errorf("result not persisted: %v", err)
	}

	_, got, err := server.handleSimulationGet(ctx, nil, SimulationGetInput{SimulationID: status.SimulationID})
	if err != nil {
		t.Fatalf("handleSimulationGet failed: %v", err)
	}
	if got.Summary.Participants.Person1ID != "david_chen" {
		t.Errorf("Person1ID = %q", got.Summary.Participants.Person1ID)
	}
	if got.TotalTurns == 0 {
		t.Error("TotalTurns = 0")
	}
	if len(got.FinalAssessment) != 2 {
		t.Errorf("FinalAssessment has %d entries, want 2", len(got.FinalAssessment))
	}
	if got.Days != nil {
		t.Error("Days included without include_days")
	}

	_, full, err := server.handleSimulationGet(ctx, nil, SimulationGetInput{SimulationID: status.SimulationID, IncludeDays: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(full.Days) != 1 {
		t.Errorf("Days = %d, want 1", len(full.Days))
	}
}

func TestHandleSimulationStart_InvalidInput(t *testing.T) {
	server, _ := setupTestServer(t)

	tests := []struct {
		name    string
		args    SimulationStartInput
		wantErr string
	}{
		{"missing ids", SimulationStartInput{Person1ID: "david_chen"}, "required"},
		{"self pairing", SimulationStartInput{Person1ID: "david_chen", Person2ID: "david_chen"}, "itself"},
		{"unknown profile", SimulationStartInput{Person1ID: "david_chen", Person2ID: "nobody"}, "profile not found: nobody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleSimulationStart(context.Background(), nil, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
	if n := len(server.pool.List()); n != 0 {
		t.Errorf("%d jobs submitted for invalid input", n)
	}
}

func TestHandleSimulationStart_DefaultBurst(t *testing.T) {
	server, _ := setupTestServer(t)
	server.toolLimiters = ratelimit.NewToolLimiters()
	args := SimulationStartInput{Person1ID: "david_chen", Person2ID: "nobody"}

	for i := 0; i < 2; i++ {
		if _, _, err := server.handleSimulationStart(context.Background(), nil, args); errors.Is(err, ratelimit.ErrRateLimited) {
			t.Fatalf("call %d rate limited within burst", i+1)
		}
	}
	if _, _, err := server.handleSimulationStart(context.Background(), nil, args); !errors.Is(err, ratelimit.ErrRateLimited) {
		t.Errorf("third call error = %v, want ErrRateLimited", err)
	}
}

func TestHandleSimulationStatus_FromStore(t *testing.T) {
	server, results := setupTestServer(t)
	ctx := context.Background()

	end := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	stored := &models.SimulationResult{
		ID:            "earlier_run",
		Participants:  models.Participants{Person1: "Maya Patel", Person2: "Jordan Lee", Person1ID: "maya_patel", Person2ID: "jordan_lee"},
		StartTime:     end.Add(-time.Hour),
		EndTime:       &end,
		Status:        models.StatusFailed,
		Error:         "simulation earlier_run failed on day 1: timeout",
		CompletedDays: 0,
	}
	if err := results.Save(ctx, stored); err != nil {
		t.Fatal(err)
	}

	_, out, err := server.handleSimulationStatus(ctx, nil, SimulationStatusInput{SimulationID: "earlier_run"})
	if err != nil {
		t.Fatalf("handleSimulationStatus failed: %v", err)
	}
	if out.Status != models.StatusFailed || out.Error == "" || out.Person2ID != "jordan_lee" {
		t.Errorf("unexpected status: %+v", out)
	}

	if _, _, err := server.handleSimulationStatus(ctx, nil, SimulationStatusInput{JobID: "missing"}); err == nil {
		t.Error("expected error for unknown job")
	}
	if _, _, err := server.handleSimulationStatus(ctx, nil, SimulationStatusInput{}); err == nil {
		t.Error("expected error without ids")
	}
	if _, _, err := server.handleSimulationGet(ctx, nil, SimulationGetInput{SimulationID: "missing"}); err == nil {
		t.Error("expected error for unknown simulation")
	}
}

func TestHandleSimulationList(t *testing.T) {
	server, results := setupTestServer(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, st := range []models.Status{models.StatusInProgress, models.StatusFailed, models.StatusInProgress} {
		r := &models.SimulationResult{
			ID:           []string{"one", "two", "three"}[i],
			Participants: models.Participants{Person1ID: "alex_kim", Person2ID: "zara_williams"},
			StartTime:    base.Add(time.Duration(i) * time.Hour),
			Status:       st,
		}
		if st == models.StatusFailed {
			r.Error = "boom"
		}
		if err := results.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	_, out, err := server.handleSimulationList(ctx, nil, SimulationListInput{})
	if err != nil {
		t.Fatalf("handleSimulationList failed: %v", err)
	}
	if out.Count != 3 || out.Simulations[0].ID != "three" {
		t.Errorf("unexpected listing: %+v", out.Simulations)
	}

	_, out, err = server.handleSimulationList(ctx, nil, SimulationListInput{Status: "in_progress", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Simulations[0].ID != "three" {
		t.Errorf("filtered listing: %+v", out.Simulations)
	}

	if _, _, err := server.handleSimulationList(ctx, nil, SimulationListInput{Status: "running"}); err == nil {
		t.Error("expected error for unknown status filter")
	}
}

func TestHandleProfileList(t *testing.T) {
	server, _ := setupTestServer(t)

	_, out, err := server.handleProfileList(context.Background(), nil, ProfileListInput{})
	if err != nil {
		t.Fatalf("handleProfileList failed: %v", err)
	}
	if out.Count != 10 || len(out.Profiles) != 10 {
		t.Fatalf("Count = %d, want 10", out.Count)
	}
	if out.Profiles[0].ID == "" || out.Profiles[0].Personality == "" {
		t.Errorf("incomplete item: %+v", out.Profiles[0])
	}
}

func TestHandlers_RateLimited(t *testing.T) {
	server, _ := setupTestServer(t)
	server.toolLimiters = ratelimit.ToolLimiters{
		ratelimit.ToolProfileList: ratelimit.NewLimiter(0.001, 1),
	}
	ctx := context.Background()

	if _, _, err := server.handleProfileList(ctx, nil, ProfileListInput{}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	_, _, err := server.handleProfileList(ctx, nil, ProfileListInput{})
	if !errors.Is(err, ratelimit.ErrRateLimited) {
		t.Errorf("second call error = %v, want ErrRateLimited", err)
	}
}
