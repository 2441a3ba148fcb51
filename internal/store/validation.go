package store

import (
	"errors"
	"fmt"

	"github.com/nvandessel/auralie/internal/affinity"
	"github.com/nvandessel/auralie/internal/models"
)

// ValidationError describes one inconsistency in a simulation result.
type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Issue)
}

// ValidateResult checks the structural invariants of a result: day logs
// are numbered 1..n in order, completed_days matches the kept days, every
// recorded level is within bounds, and a completed result carries a
// verdict. All violations are joined into the returned error.
func ValidateResult(r *models.SimulationResult) error {
	if r == nil {
		return ValidationError{Field: "result", Issue: "nil"}
	}
	var errs []error
	if r.ID == "" {
		errs = append(errs, ValidationError{Field: "id", Issue: "empty"})
	}
	if r.CompletedDays != len(r.Days) {
		errs = append(errs, ValidationError{
			Field: "completed_days",
			Issue: fmt.Sprintf("%d does not match %d day logs", r.CompletedDays, len(r.Days)),
		})
	}
	for i, d := range r.Days {
		if d.Day != i+1 {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("days[%d].day", i),
				Issue: fmt.Sprintf("got %d, want %d", d.Day, i+1),
			})
		}
		for _, s := range d.TextingSessions {
			errs = append(errs, checkTurns(fmt.Sprintf("days[%d].%s", i, s.Time), s.Exchanges)...)
		}
		for j, a := range d.Activities {
			errs = append(errs, checkTurns(fmt.Sprintf("days[%d].activities[%d]", i, j), a.Interactions)...)
		}
	}

	switch r.Status {
	case models.StatusCompleted:
		if r.Compatibility == nil {
			errs = append(errs, ValidationError{Field: "compatibility", Issue: "missing on completed result"})
		}
		if r.EndTime == nil {
			errs = append(errs, ValidationError{Field: "end_time", Issue: "missing on completed result"})
		}
	case models.StatusFailed:
		if r.Error == "" {
			errs = append(errs, ValidationError{Field: "error", Issue: "missing on failed result"})
		}
	case models.StatusPending, models.StatusInProgress:
	default:
		errs = append(errs, ValidationError{Field: "status", Issue: fmt.Sprintf("unknown %q", r.Status)})
	}
	return errors.Join(errs...)
}

func checkTurns(field string, turns []models.Turn) []error {
	var errs []error
	for k, t := range turns {
		if t.AffinityLevel < affinity.MinLevel || t.AffinityLevel > affinity.MaxLevel {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("%s[%d].affinity_level", field, k),
				Issue: fmt.Sprintf("%d out of range", t.AffinityLevel),
			})
		}
	}
	return errs
}
