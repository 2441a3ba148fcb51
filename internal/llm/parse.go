package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNoTurn is returned when generated text carries no usable turn object.
var ErrNoTurn = errors.New("no turn object in generated text")

// ErrNoList is returned when generated text carries no JSON string array.
var ErrNoList = errors.New("no string list in generated text")

// Parsed is the structured content of one generated turn.
type Parsed struct {
	Message   string
	Emotion   string
	Rationale string
	Delta     int
}

var (
	messageKeys   = []string{"message"}
	emotionKeys   = []string{"emotion"}
	rationaleKeys = []string{"internal_thought", "rationale", "thought"}
	deltaKeys     = []string{"fondness_change", "affinity_change", "delta"}
)

// maxRawDelta bounds a parsed delta before integer conversion. Callers
// clamp to their own, much tighter, range.
const maxRawDelta = 1e6

// ParseTurn extracts the first well-formed JSON object in text that has a
// non-empty "message". Markdown fences and surrounding prose are ignored.
// Deltas may be integers, floats (rounded), or numeric strings.
func ParseTurn(text string) (Parsed, error) {
	for _, candidate := range balanced(text, '{', '}') {
		obj, ok := decodeObject(candidate)
		if !ok {
			continue
		}
		msg := strings.TrimSpace(stringField(obj, messageKeys))
		if msg == "" {
			continue
		}
		delta, err := deltaField(obj)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{
			Message:   msg,
			Emotion:   strings.TrimSpace(stringField(obj, emotionKeys)),
			Rationale: strings.TrimSpace(stringField(obj, rationaleKeys)),
			Delta:     delta,
		}, nil
	}
	return Parsed{}, ErrNoTurn
}

// ParseStringList extracts the first JSON array of strings in text.
// Empty entries are dropped.
func ParseStringList(text string) ([]string, error) {
	for _, candidate := range balanced(text, '[', ']') {
		var items []string
		if err := json.Unmarshal([]byte(candidate), &items); err != nil {
			continue
		}
		out := items[:0]
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				out = append(out, it)
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return nil, ErrNoList
}

// ExtractJSON returns the first balanced JSON object or array in s,
// or "" if there is none.
func ExtractJSON(s string) string {
	objs := balanced(s, '{', '}')
	arrs := balanced(s, '[', ']')
	switch {
	case len(objs) == 0 && len(arrs) == 0:
		return ""
	case len(objs) == 0:
		return arrs[0]
	case len(arrs) == 0:
		return objs[0]
	}
	if strings.Index(s, objs[0]) <= strings.Index(s, arrs[0]) {
		return objs[0]
	}
	return arrs[0]
}

func decodeObject(candidate string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj, true
	}
	fixed, changed := stripLeadingPlus(candidate)
	if !changed {
		return nil, false
	}
	if err := json.Unmarshal([]byte(fixed), &obj); err == nil {
		return obj, true
	}
	return nil, false
}

func stringField(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			switch s := v.(type) {
			case string:
				return s
			case nil:
				return ""
			default:
				return fmt.Sprint(s)
			}
		}
	}
	return ""
}

func deltaField(obj map[string]any) (int, error) {
	for _, k := range deltaKeys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		switch d := v.(type) {
		case float64:
			return roundDelta(k, d)
		case string:
			s := strings.TrimPrefix(strings.TrimSpace(d), "+")
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %s is not numeric: %q", ErrNoTurn, k, d)
			}
			return roundDelta(k, f)
		case nil:
			return 0, nil
		default:
			return 0, fmt.Errorf("%w: %s has unexpected type %T", ErrNoTurn, k, v)
		}
	}
	return 0, nil
}

func roundDelta(key string, f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s is not finite", ErrNoTurn, key)
	}
	return int(math.Round(math.Max(-maxRawDelta, math.Min(maxRawDelta, f)))), nil
}

// stripLeadingPlus drops a '+' that starts a number after ':', '[' or ','
// outside JSON strings. It reports whether anything was removed.
func stripLeadingPlus(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped, changed := false, false, false
	var prev byte // last non-space byte outside strings
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				prev = c
			}
			b.WriteByte(c)
			continue
		}
		if c == '+' && (prev == ':' || prev == '[' || prev == ',') &&
			i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			changed = true
			continue
		}
		if c == '"' {
			inString = true
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			prev = c
		}
		b.WriteByte(c)
	}
	return b.String(), changed
}

// balanced returns every top-level substring of s that starts with open
// and ends at its matching close, skipping brackets inside JSON strings.
func balanced(s string, open, close byte) []string {
	var out []string
	for start := 0; start < len(s); start++ {
		if s[start] != open {
			continue
		}
		if end := matchClose(s, start, open, close); end > 0 {
			out = append(out, s[start:end+1])
			start = end
		}
	}
	return out
}

func matchClose(s string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
