package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvandessel/auralie/internal/models"
)

// Verdict labels.
const (
	RatingHighly     = "highly compatible"
	RatingCompatible = "compatible"
	RatingModerate   = "moderately compatible"
	RatingNot        = "not compatible"
)

// Verdict maps the mean final affinity to a compatibility rating.
func Verdict(score float64) string {
	switch {
	case score >= 75:
		return RatingHighly
	case score >= 60:
		return RatingCompatible
	case score >= 40:
		return RatingModerate
	default:
		return RatingNot
	}
}

// Score returns the arithmetic mean of two final levels.
func Score(a, b int) float64 {
	return float64(a+b) / 2
}

// NewID builds a simulation ID from both profile IDs, the start time, and
// a random suffix so two runs of the same pair in the same second differ.
func NewID(a, b *models.Profile, start time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s", a.ID, b.ID, start.Format("20060102_150405"), uuid.NewString()[:8])
}
