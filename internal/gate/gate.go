// Package gate implements the fixed-duration loading state shown before the
// page sections are mounted.
package gate

import (
	"context"
	"time"

	"github.com/alexedwards/scs/v2"

	applog "folio/internal/log"
)

// DefaultDelay is how long the loader stays up after the first visit.
const DefaultDelay = 2 * time.Second

// State describes where a mount sits relative to the gate.
type State struct {
	Loading   bool
	Remaining time.Duration
}

// Gate decides whether a mount is still loading. Now defaults to time.Now.
type Gate struct {
	Delay time.Duration
	Now   func() time.Time
}

func (g Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// State reports whether the gate is still closed for a page mounted at
// mountedAt. A zero mountedAt counts as mounted right now.
func (g Gate) State(mountedAt time.Time) State {
	if g.Delay <= 0 {
		return State{}
	}
	if mountedAt.IsZero() {
		return State{Loading: true, Remaining: g.Delay}
	}
	remaining := g.Delay - g.now().Sub(mountedAt)
	if remaining <= 0 {
		return State{}
	}
	return State{Loading: true, Remaining: remaining}
}

// Wait blocks until the gate opens for mountedAt. The timer is released on
// every return path; if ctx ends first Wait returns ctx.Err().
func (g Gate) Wait(ctx context.Context, mountedAt time.Time) error {
	state := g.State(mountedAt)
	if !state.Loading {
		return ctx.Err()
	}

	timer := time.NewTimer(state.Remaining)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		applog.Debug(ctx, "loading gate abandoned", "remaining", state.Remaining)
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const (
	sessionMountedKey = "gate:mounted"
	sessionSettledKey = "gate:settled"
)

// Tracker stores the mount instant and the settled flag in the visitor's
// session so the loader is shown once per session.
type Tracker struct {
	Gate     Gate
	Sessions *scs.SessionManager
}

// Mount records the first mount instant for the session and returns it. The
// instant is stored as Unix nanoseconds so the session codec can encode it.
func (t *Tracker) Mount(ctx context.Context) time.Time {
	if t.Sessions == nil {
		return time.Time{}
	}
	if nanos := t.Sessions.GetInt64(ctx, sessionMountedKey); nanos != 0 {
		return time.Unix(0, nanos).UTC()
	}
	mounted := t.Gate.now().UTC()
	t.Sessions.Put(ctx, sessionMountedKey, mounted.UnixNano())
	applog.Debug(ctx, "loading gate mounted", "delay", t.Gate.Delay)
	return mounted
}

// Settled reports whether the session has already passed the gate.
func (t *Tracker) Settled(ctx context.Context) bool {
	if t.Sessions == nil {
		return false
	}
	return t.Sessions.GetBool(ctx, sessionSettledKey)
}

// Settle marks the session as past the gate. It never reverts.
func (t *Tracker) Settle(ctx context.Context) {
	if t.Sessions == nil {
		return
	}
	t.Sessions.Put(ctx, sessionSettledKey, true)
}

// Status mounts the session if needed and returns its current state,
// settling the session once the delay has elapsed.
func (t *Tracker) Status(ctx context.Context) State {
	if t.Settled(ctx) {
		return State{}
	}
	state := t.Gate.State(t.Mount(ctx))
	if !state.Loading {
		t.Settle(ctx)
	}
	return state
}

// Wait blocks until the session's gate opens and then settles it. Nothing is
// written to the session when ctx ends first.
func (t *Tracker) Wait(ctx context.Context) error {
	if t.Settled(ctx) {
		return nil
	}
	if err := t.Gate.Wait(ctx, t.Mount(ctx)); err != nil {
		return err
	}
	t.Settle(ctx)
	return nil
}
