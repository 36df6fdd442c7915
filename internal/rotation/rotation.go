// Package rotation cycles through a fixed list of labels on an interval.
package rotation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInterval is the time each label stays on screen.
const DefaultInterval = 2500 * time.Millisecond

var (
	// ErrRunning is returned when Run is called on a rotator that is already running.
	ErrRunning = errors.New("rotation: already running")
	// ErrEmpty is returned when Run is called without labels.
	ErrEmpty = errors.New("rotation: no labels")
)

// Rotator owns the index of one rotating label display.
type Rotator struct {
	labels   []string
	interval time.Duration

	mu      sync.Mutex
	index   int
	running bool
}

// New copies labels and returns a rotator positioned on the first one. A
// non-positive interval is replaced by DefaultInterval.
func New(labels []string, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{
		labels:   append([]string(nil), labels...),
		interval: interval,
	}
}

// Next returns the index following i in a list of n labels, wrapping to 0.
func Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

func (r *Rotator) Interval() time.Duration { return r.interval }

func (r *Rotator) Labels() []string { return append([]string(nil), r.labels...) }

// Current returns the index and label on display.
func (r *Rotator) Current() (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.labels) == 0 {
		return 0, ""
	}
	return r.index, r.labels[r.index]
}

func (r *Rotator) advance() (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = Next(r.index, len(r.labels))
	return r.index, r.labels[r.index]
}

// Run advances the label once per interval and hands each new label to emit
// until ctx ends or emit fails. Only one Run may be active per rotator; the
// ticker is stopped before Run returns, so emit is never called afterwards.
func (r *Rotator) Run(ctx context.Context, emit func(index int, label string) error) error {
	if len(r.labels) == 0 {
		return ErrEmpty
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrRunning
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			index, label := r.advance()
			if err := emit(index, label); err != nil {
				return err
			}
		}
	}
}
