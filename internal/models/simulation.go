package models

import "time"

// Status is the lifecycle state of a simulation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// AffinityChange decomposes the delta applied on one turn.
// Total is what was actually passed to the affinity state.
type AffinityChange struct {
	Generated     int `json:"generated"`
	Friction      int `json:"friction"`
	ValueMismatch int `json:"value_mismatch"`
	Dealbreaker   int `json:"dealbreaker"`
	Total         int `json:"total"`
}

// Turn is one recorded message. Turns are never modified after recording.
type Turn struct {
	Day             int            `json:"day"`
	Label           string         `json:"label"`
	Sender          string         `json:"sender"`
	SenderID        string         `json:"sender_id"`
	Message         string         `json:"message"`
	Emotion         string         `json:"emotion"`
	InternalThought string         `json:"internal_thought,omitempty"`
	AffinityChange  AffinityChange `json:"affinity_change"`
	AffinityLevel   int            `json:"affinity_level"`
	ProbeQuestion   string         `json:"probe_question,omitempty"`
	Fallback        bool           `json:"fallback,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
}

// TextingSession is a morning or evening exchange of messages.
type TextingSession struct {
	Time      string `json:"time"`
	Exchanges []Turn `json:"exchanges"`
}

// Activity is one entry of the activity catalogue.
type Activity struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	IntimacyLevel int    `json:"intimacy_level"`
	Tier          int    `json:"tier"`
	Days          []int  `json:"-"`
}

// ActivityLog is an activity session and the turns exchanged during it.
type ActivityLog struct {
	Activity     Activity `json:"activity"`
	Interactions []Turn   `json:"interactions"`
}

// DayLog is everything that happened on one simulated day.
type DayLog struct {
	Day             int              `json:"day"`
	TextingSessions []TextingSession `json:"texting_sessions"`
	Activities      []ActivityLog    `json:"activities"`
}

// Participants names the two profiles of a simulation.
type Participants struct {
	Person1   string `json:"person1"`
	Person2   string `json:"person2"`
	Person1ID string `json:"person1_id"`
	Person2ID string `json:"person2_id"`
}

// FinalAssessment is one participant's closing statement and level.
type FinalAssessment struct {
	Name          string `json:"name"`
	Statement     string `json:"statement"`
	FinalAffinity int    `json:"final_affinity"`
}

// Compatibility is the verdict derived from both final levels.
type Compatibility struct {
	Rating string  `json:"rating"`
	Score  float64 `json:"score"`
}

// SimulationResult is the persisted record of one simulation run.
type SimulationResult struct {
	ID              string                     `json:"id"`
	Participants    Participants               `json:"participants"`
	StartTime       time.Time                  `json:"start_time"`
	EndTime         *time.Time                 `json:"end_time,omitempty"`
	Days            []DayLog                   `json:"days"`
	Status          Status                     `json:"status"`
	CompletedDays   int                        `json:"completed_days"`
	FinalAssessment map[string]FinalAssessment `json:"final_assessment,omitempty"`
	Compatibility   *Compatibility             `json:"compatibility,omitempty"`
	DateSuggestions []string                   `json:"date_suggestions,omitempty"`
	Error           string                     `json:"error,omitempty"`
}

// Summary is a compact listing view of a SimulationResult.
type Summary struct {
	ID            string         `json:"id"`
	Participants  Participants   `json:"participants"`
	StartTime     time.Time      `json:"start_time"`
	Status        Status         `json:"status"`
	CompletedDays int            `json:"completed_days"`
	Compatibility *Compatibility `json:"compatibility,omitempty"`
}

// Summarize returns the listing view of r.
func (r *SimulationResult) Summarize() Summary {
	return Summary{
		ID:            r.ID,
		Participants:  r.Participants,
		StartTime:     r.StartTime,
		Status:        r.Status,
		CompletedDays: r.CompletedDays,
		Compatibility: r.Compatibility,
	}
}

// TurnCount returns the number of recorded turns across all days.
func (r *SimulationResult) TurnCount() int {
	n := 0
	for _, d := range r.Days {
		for _, s := range d.TextingSessions {
			n += len(s.Exchanges)
		}
		for _, a := range d.Activities {
			n += len(a.Interactions)
		}
	}
	return n
}
