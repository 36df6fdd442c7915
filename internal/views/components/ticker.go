package components

import (
	"encoding/json"
	"strconv"
	"time"
)

// SkillStreamPath serves the rotating skill label as server-sent events.
const SkillStreamPath = "/hero/skills/stream"

// Ticker describes the rotating skill label in the hero. Stream is empty when
// the page is exported, in which case the browser rotates the labels itself.
type Ticker struct {
	Labels   []string
	Index    int
	Interval time.Duration
	Stream   string
}

// Current returns the label at Index, wrapping out of range values.
func (t Ticker) Current() string {
	if len(t.Labels) == 0 {
		return ""
	}
	i := t.Index % len(t.Labels)
	if i < 0 {
		i += len(t.Labels)
	}
	return t.Labels[i]
}

func (t Ticker) labelsJSON() string {
	data, err := json.Marshal(t.Labels)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func (t Ticker) intervalMillis() string {
	return strconv.FormatInt(t.Interval.Milliseconds(), 10)
}
