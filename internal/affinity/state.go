// Package affinity tracks one agent's bounded affinity score toward its partner.
package affinity

import "sync"

const (
	// MinLevel and MaxLevel bound every affinity level.
	MinLevel = 0
	MaxLevel = 100

	// DefaultStart is the starting level when none is configured.
	DefaultStart = 50

	// StartEmotion is the emotion every state begins with.
	StartEmotion = "curious"
)

// Record is one entry in the append-only history.
// Level is the clamped result; Delta is the requested change.
type Record struct {
	Emotion string `json:"emotion"`
	Level   int    `json:"level"`
	Delta   int    `json:"delta"`
	Note    string `json:"note,omitempty"`
}

// State is an agent's emotion and affinity level with full history.
// The level is always within [MinLevel, MaxLevel].
type State struct {
	mu      sync.RWMutex
	owner   string
	emotion string
	level   int
	history []Record
}

// New creates a state for owner starting at level start (clamped).
func New(owner string, start int) *State {
	return &State{
		owner:   owner,
		emotion: StartEmotion,
		level:   clamp(start),
	}
}

// Update sets the emotion, applies delta with clamping, and appends
// exactly one history record.
func (s *State) Update(emotion string, delta int, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.emotion = emotion
	s.level = clamp(s.level + delta)
	s.history = append(s.history, Record{
		Emotion: emotion,
		Level:   s.level,
		Delta:   delta,
		Note:    note,
	})
}

// Owner returns the id of the agent that owns this state.
func (s *State) Owner() string {
	return s.owner
}

// Level returns the current affinity level.
func (s *State) Level() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// Emotion returns the current emotion label.
func (s *State) Emotion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emotion
}

// History returns a copy of all records in order.
func (s *State) History() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}

// Last returns the most recent record and false when history is empty.
func (s *State) Last() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.history) == 0 {
		return Record{}, false
	}
	return s.history[len(s.history)-1], true
}

// Describe returns a qualitative label for the current level.
func (s *State) Describe() string {
	return DescribeLevel(s.Level())
}

// DescribeLevel maps a level to its qualitative band.
func DescribeLevel(level int) string {
	switch {
	case level >= 80:
		return "very positive"
	case level >= 60:
		return "positive"
	case level >= 40:
		return "neutral-positive"
	case level >= 20:
		return "cooling"
	default:
		return "incompatible"
	}
}

func clamp(v int) int {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}
