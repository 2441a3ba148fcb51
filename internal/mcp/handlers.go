package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/ratelimit"
	"github.com/nvandessel/auralie/internal/store"
)

const defaultListLimit = 20

// registerTools registers all auralie MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolSimulationStart,
		Description: "Start a background simulation of two profiles texting for a week. Returns a job ID to poll.",
	}, s.handleSimulationStart)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolSimulationStatus,
		Description: "Get the status and, once finished, the compatibility verdict of a simulation",
	}, s.handleSimulationStatus)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolSimulationGet,
		Description: "Get a stored simulation result: verdict, final assessments, date suggestions and optionally the transcript",
	}, s.handleSimulationGet)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolSimulationList,
		Description: "List stored simulations, newest first, plus jobs submitted to this server",
	}, s.handleSimulationList)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolProfileList,
		Description: "List the profiles available for simulation",
	}, s.handleProfileList)
}

func (s *Server) handleSimulationStart(ctx context.Context, req *sdk.CallToolRequest, args SimulationStartInput) (_ *sdk.CallToolResult, _ SimulationStartOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolSimulationStart, start, retErr, sanitizeToolParams(map[string]any{
			"person1_id": args.Person1ID, "person2_id": args.Person2ID,
		}))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolSimulationStart); err != nil {
		return nil, SimulationStartOutput{}, err
	}

	if args.Person1ID == "" || args.Person2ID == "" {
		return nil, SimulationStartOutput{}, errors.New("person1_id and person2_id are required")
	}
	if args.Person1ID == args.Person2ID {
		return nil, SimulationStartOutput{}, errors.New("a profile cannot be paired with itself")
	}
	a, err := s.profile(ctx, args.Person1ID)
	if err != nil {
		return nil, SimulationStartOutput{}, err
	}
	b, err := s.profile(ctx, args.Person2ID)
	if err != nil {
		return nil, SimulationStartOutput{}, err
	}

	jobID, err := s.pool.Submit(a, b)
	if err != nil {
		return nil, SimulationStartOutput{}, fmt.Errorf("failed to start simulation: %w", err)
	}
	s.logger.Info("simulation submitted", "job_id", jobID)

	return nil, SimulationStartOutput{
		JobID:   jobID,
		Status:  models.StatusPending,
		Message: fmt.Sprintf("Simulating %s and %s. Poll simulation_status with job_id %s.", a.Name, b.Name, jobID),
	}, nil
}

func (s *Server) handleSimulationStatus(ctx context.Context, req *sdk.CallToolRequest, args SimulationStatusInput) (_ *sdk.CallToolResult, _ SimulationStatusOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolSimulationStatus, start, retErr, sanitizeToolParams(map[string]any{
			"job_id": args.JobID, "simulation_id": args.SimulationID,
		}))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolSimulationStatus); err != nil {
		return nil, SimulationStatusOutput{}, err
	}

	if args.JobID == "" && args.SimulationID == "" {
		return nil, SimulationStatusOutput{}, errors.New("job_id or simulation_id is required")
	}

	if args.JobID != "" {
		if st, ok := s.pool.Status(args.JobID); ok {
			return nil, SimulationStatusOutput{
				JobID:         st.JobID,
				SimulationID:  st.SimulationID,
				Person1ID:     st.Person1ID,
				Person2ID:     st.Person2ID,
				Status:        st.Status,
				CompletedDays: st.CompletedDays,
				Compatibility: st.Compatibility,
				Error:         st.Error,
			}, nil
		}
		if args.SimulationID == "" {
			return nil, SimulationStatusOutput{}, fmt.Errorf("job not found: %s", args.JobID)
		}
	}

	res, err := s.result(ctx, args.SimulationID)
	if err != nil {
		return nil, SimulationStatusOutput{}, err
	}
	return nil, SimulationStatusOutput{
		SimulationID:  res.ID,
		Person1ID:     res.Participants.Person1ID,
		Person2ID:     res.Participants.Person2ID,
		Status:        res.Status,
		CompletedDays: res.CompletedDays,
		Compatibility: res.Compatibility,
		Error:         res.Error,
	}, nil
}

func (s *Server) handleSimulationGet(ctx context.Context, req *sdk.CallToolRequest, args SimulationGetInput) (_ *sdk.CallToolResult, _ SimulationGetOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolSimulationGet, start, retErr, sanitizeToolParams(map[string]any{
			"simulation_id": args.SimulationID, "include_days": args.IncludeDays,
		}))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolSimulationGet); err != nil {
		return nil, SimulationGetOutput{}, err
	}

	if args.SimulationID == "" {
		return nil, SimulationGetOutput{}, errors.New("simulation_id is required")
	}
	res, err := s.result(ctx, args.SimulationID)
	if err != nil {
		return nil, SimulationGetOutput{}, err
	}

	out := SimulationGetOutput{
		Summary:         res.Summarize(),
		TotalTurns:      res.TurnCount(),
		FinalAssessment: res.FinalAssessment,
		DateSuggestions: res.DateSuggestions,
		Error:           res.Error,
	}
	if args.IncludeDays {
		out.Days = res.Days
	}
	return nil, out, nil
}

func (s *Server) handleSimulationList(ctx context.Context, req *sdk.CallToolRequest, args SimulationListInput) (_ *sdk.CallToolResult, _ SimulationListOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolSimulationList, start, retErr, sanitizeToolParams(map[string]any{
			"status": args.Status, "limit": args.Limit,
		}))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolSimulationList); err != nil {
		return nil, SimulationListOutput{}, err
	}

	filter := models.Status(args.Status)
	if filter != "" && !filter.Valid() {
		return nil, SimulationListOutput{}, fmt.Errorf("invalid status filter: %s", args.Status)
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	summaries, err := s.results.List(ctx)
	if err != nil {
		return nil, SimulationListOutput{}, fmt.Errorf("failed to list simulations: %w", err)
	}

	out := SimulationListOutput{Simulations: []models.Summary{}}
	for _, sum := range summaries {
		if filter != "" && sum.Status != filter {
			continue
		}
		out.Simulations = append(out.Simulations, sum)
		if len(out.Simulations) == limit {
			break
		}
	}
	for _, j := range s.pool.List() {
		if filter == "" || j.Status == filter {
			out.Jobs = append(out.Jobs, j)
		}
	}
	out.Count = len(out.Simulations)
	return nil, out, nil
}

func (s *Server) handleProfileList(ctx context.Context, req *sdk.CallToolRequest, args ProfileListInput) (_ *sdk.CallToolResult, _ ProfileListOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolProfileList, start, retErr, sanitizeToolParams(map[string]any{}))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolProfileList); err != nil {
		return nil, ProfileListOutput{}, err
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, ProfileListOutput{}, fmt.Errorf("failed to list profiles: %w", err)
	}
	items := make([]ProfileListItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, ProfileListItem{
			ID:          p.ID,
			Name:        p.Name,
			Age:         p.Age,
			Gender:      string(p.Gender),
			Personality: string(p.Personality),
			Interests:   p.Interests,
		})
	}
	return nil, ProfileListOutput{Profiles: items, Count: len(items)}, nil
}

func (s *Server) profile(ctx context.Context, id string) (*models.Profile, error) {
	p, err := s.profiles.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("profile not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", id, err)
	}
	return p, nil
}

func (s *Server) result(ctx context.Context, id string) (*models.SimulationResult, error) {
	res, err := s.results.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("simulation not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation %s: %w", id, err)
	}
	return res, nil
}
