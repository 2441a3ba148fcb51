package mcp

import (
	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/simulation"
)

// SimulationStartInput defines the input for the simulation_start tool.
type SimulationStartInput struct {
	Person1ID string `json:"person1_id" jsonschema:"ID of the first profile (e.g. 'david_chen')"`
	Person2ID string `json:"person2_id" jsonschema:"ID of the second profile"`
}

// SimulationStartOutput defines the output for the simulation_start tool.
type SimulationStartOutput struct {
	JobID   string        `json:"job_id" jsonschema:"ID to poll with simulation_status"`
	Status  models.Status `json:"status"`
	Message string        `json:"message"`
}

// SimulationStatusInput defines the input for the simulation_status tool.
type SimulationStatusInput struct {
	JobID        string `json:"job_id,omitempty" jsonschema:"Job ID returned by simulation_start"`
	SimulationID string `json:"simulation_id,omitempty" jsonschema:"Stored simulation ID, used when the job is not known to this server"`
}

// SimulationStatusOutput defines the output for the simulation_status tool.
type SimulationStatusOutput struct {
	JobID         string                `json:"job_id,omitempty"`
	SimulationID  string                `json:"simulation_id,omitempty"`
	Person1ID     string                `json:"person1_id"`
	Person2ID     string                `json:"person2_id"`
	Status        models.Status         `json:"status"`
	CompletedDays int                   `json:"completed_days"`
	Compatibility *models.Compatibility `json:"compatibility,omitempty"`
	Error         string                `json:"error,omitempty"`
}

// SimulationGetInput defines the input for the simulation_get tool.
type SimulationGetInput struct {
	SimulationID string `json:"simulation_id" jsonschema:"Stored simulation ID"`
	IncludeDays  bool   `json:"include_days,omitempty" jsonschema:"Include the full day-by-day transcript (default: false)"`
}

// SimulationGetOutput defines the output for the simulation_get tool.
type SimulationGetOutput struct {
	Summary         models.Summary                    `json:"summary"`
	TotalTurns      int                               `json:"total_turns"`
	FinalAssessment map[string]models.FinalAssessment `json:"final_assessment,omitempty"`
	DateSuggestions []string                          `json:"date_suggestions,omitempty"`
	Error           string                            `json:"error,omitempty"`
	Days            []models.DayLog                   `json:"days,omitempty"`
}

// SimulationListInput defines the input for the simulation_list tool.
type SimulationListInput struct {
	Status string `json:"status,omitempty" jsonschema:"Only list simulations with this status: pending, in_progress, completed, failed"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of stored simulations to return (default: 20)"`
}

// SimulationListOutput defines the output for the simulation_list tool.
type SimulationListOutput struct {
	Simulations []models.Summary       `json:"simulations"`
	Jobs        []simulation.JobStatus `json:"jobs,omitempty" jsonschema:"Jobs submitted to this server"`
	Count       int                    `json:"count"`
}

// ProfileListInput defines the input for the profile_list tool.
type ProfileListInput struct{}

// ProfileListOutput defines the output for the profile_list tool.
type ProfileListOutput struct {
	Profiles []ProfileListItem `json:"profiles"`
	Count    int               `json:"count"`
}

// ProfileListItem provides a list view of a profile.
type ProfileListItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender,omitempty"`
	Personality string   `json:"personality"`
	Interests   []string `json:"interests,omitempty"`
}
