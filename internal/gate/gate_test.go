package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStateTransitionsAfterDelay(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	g := Gate{Delay: DefaultDelay, Now: clock.Now}
	mounted := clock.Now()

	state := g.State(mounted)
	if !state.Loading || state.Remaining != DefaultDelay {
		t.Fatalf("State() at mount = %+v", state)
	}

	clock.advance(1500 * time.Millisecond)
	state = g.State(mounted)
	if !state.Loading || state.Remaining != 500*time.Millisecond {
		t.Fatalf("State() mid-delay = %+v", state)
	}

	clock.advance(500 * time.Millisecond)
	if state := g.State(mounted); state.Loading {
		t.Fatalf("State() at delay = %+v, want settled", state)
	}
}

func TestStateWithZeroMountIsLoading(t *testing.T) {
	t.Parallel()

	g := Gate{Delay: time.Second}
	if state := g.State(time.Time{}); !state.Loading || state.Remaining != time.Second {
		t.Fatalf("State(zero) = %+v", state)
	}
	if state := (Gate{}).State(time.Time{}); state.Loading {
		t.Fatalf("zero delay gate should never load, got %+v", state)
	}
}

func TestWaitReturnsAfterRemaining(t *testing.T) {
	t.Parallel()

	g := Gate{Delay: 20 * time.Millisecond}
	start := time.Now()
	if err := g.Wait(context.Background(), start); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("Wait() returned after %s, want at least 20ms", elapsed)
	}
}

func TestWaitStopsOnCancel(t *testing.T) {
	t.Parallel()

	g := Gate{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- g.Wait(ctx, time.Now())
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Wait() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after cancellation")
	}
}

func newTracker(t *testing.T, clock *fakeClock) (*Tracker, context.Context) {
	t.Helper()
	sm := scs.New()
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return &Tracker{Gate: Gate{Delay: DefaultDelay, Now: clock.Now}, Sessions: sm}, ctx
}

func TestTrackerSettlesOnceAndNeverReverts(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tracker, ctx := newTracker(t, clock)

	if state := tracker.Status(ctx); !state.Loading {
		t.Fatalf("first Status() = %+v, want loading", state)
	}
	clock.advance(DefaultDelay)
	if state := tracker.Status(ctx); state.Loading {
		t.Fatalf("Status() after delay = %+v, want settled", state)
	}
	if !tracker.Settled(ctx) {
		t.Fatal("expected session to be settled")
	}

	clock.now = clock.now.Add(-time.Hour)
	if state := tracker.Status(ctx); state.Loading {
		t.Fatalf("settled session reverted to loading: %+v", state)
	}
}

func TestTrackerMountIsStable(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tracker, ctx := newTracker(t, clock)

	first := tracker.Mount(ctx)
	clock.advance(time.Second)
	if second := tracker.Mount(ctx); !second.Equal(first) {
		t.Fatalf("Mount() moved from %s to %s", first, second)
	}
}

func TestTrackerWaitCancelledDoesNotSettle(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	tracker, ctx := newTracker(t, clock)
	tracker.Gate.Delay = time.Hour

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	if err := tracker.Wait(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() error = %v, want context.Canceled", err)
	}
	if tracker.Settled(ctx) {
		t.Fatal("cancelled wait must not settle the session")
	}
}

func TestTrackerStatusPersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	sm := scs.New()
	tracker := &Tracker{Gate: Gate{Delay: DefaultDelay, Now: clock.Now}, Sessions: sm}

	var mounts []time.Time
	var states []State
	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mounts = append(mounts, tracker.Mount(r.Context()))
		states = append(states, tracker.Status(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		return rec
	}

	first := serve(nil)
	cookies := first.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected the session cookie to be committed")
	}
	if !states[0].Loading {
		t.Fatalf("first request state = %+v, want loading", states[0])
	}

	clock.advance(DefaultDelay)
	serve(cookies)
	if !mounts[1].Equal(mounts[0]) {
		t.Fatalf("mount moved between requests: %s then %s", mounts[0], mounts[1])
	}
	if states[1].Loading {
		t.Fatalf("second request state = %+v, want settled", states[1])
	}

	clock.now = clock.now.Add(-time.Hour)
	serve(cookies)
	if states[2].Loading {
		t.Fatalf("settled session reverted to loading: %+v", states[2])
	}
}
