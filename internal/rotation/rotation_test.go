package rotation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNextWraps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		i, n, want int
	}{
		{0, 3, 1},
		{1, 3, 2},
		{2, 3, 0},
		{0, 1, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Next(tt.i, tt.n); got != tt.want {
			t.Fatalf("Next(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestRunCyclesInOrderAndWraps(t *testing.T) {
	t.Parallel()

	labels := []string{"Go", "Postgres", "HTMX"}
	r := New(labels, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []string
	err := r.Run(ctx, func(index int, label string) error {
		if labels[index] != label {
			t.Errorf("index %d carries %q, want %q", index, label, labels[index])
		}
		got = append(got, label)
		if len(got) == 7 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"Postgres", "HTMX", "Go", "Postgres", "HTMX", "Go", "Postgres"}
	if len(got) != len(want) {
		t.Fatalf("got %d labels, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label %d = %q, want %q (sequence %v)", i, got[i], want[i], got)
		}
	}
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	r := New([]string{"a", "b"}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- r.Run(ctx, func(int, string) error { return nil })
	}()
	<-started

	deadline := time.Now().Add(time.Second)
	for {
		err := r.Run(context.Background(), func(int, string) error { return nil })
		if errors.Is(err, ErrRunning) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("second Run() error = %v, want ErrRunning", err)
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	ctx2, cancel2 := context.WithCancel(context.Background())
	cancel2()
	if err := r.Run(ctx2, func(int, string) error { return nil }); err != nil {
		t.Fatalf("Run() after previous run ended error = %v", err)
	}
}

func TestRunStopsEmittingAfterCancel(t *testing.T) {
	t.Parallel()

	r := New([]string{"a", "b", "c"}, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx, func(int, string) error {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	after := calls
	mu.Unlock()
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if calls != after {
		t.Fatalf("emit called %d more times after Run returned", calls-after)
	}
}

func TestRunReturnsEmitError(t *testing.T) {
	t.Parallel()

	boom := errors.New("client gone")
	r := New([]string{"a", "b"}, time.Millisecond)
	err := r.Run(context.Background(), func(int, string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunWithoutLabels(t *testing.T) {
	t.Parallel()

	if err := New(nil, 0).Run(context.Background(), nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Run() error = %v, want ErrEmpty", err)
	}
	if idx, label := New(nil, 0).Current(); idx != 0 || label != "" {
		t.Fatalf("Current() = (%d, %q)", idx, label)
	}
}
