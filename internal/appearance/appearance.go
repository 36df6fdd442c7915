// Package appearance keeps each visitor's light/dark/system preference in
// their session.
package appearance

import (
	"context"

	"github.com/alexedwards/scs/v2"

	applog "folio/internal/log"
	"folio/internal/views/theme"
)

const sessionModeKey = "appearance:mode"

// Controller reads and writes the appearance mode of the current session.
// A controller without a session manager always reports its fallback mode
// and ignores writes, which is what the static exporter needs.
type Controller struct {
	sessions *scs.SessionManager
	fallback theme.Mode
}

// New builds a Controller. An invalid fallback is replaced by theme.DefaultMode.
func New(sessions *scs.SessionManager, fallback theme.Mode) *Controller {
	if _, ok := theme.Parse(fallback.String()); !ok {
		fallback = theme.DefaultMode
	}
	return &Controller{sessions: sessions, fallback: fallback}
}

// Current returns the session's mode or the fallback when none is stored.
func (c *Controller) Current(ctx context.Context) theme.Mode {
	if c == nil {
		return theme.DefaultMode
	}
	if c.sessions == nil {
		return c.fallback
	}
	if mode, ok := theme.Parse(c.sessions.GetString(ctx, sessionModeKey)); ok {
		return mode
	}
	return c.fallback
}

// Set stores mode in the session.
func (c *Controller) Set(ctx context.Context, mode theme.Mode) {
	if c == nil || c.sessions == nil {
		return
	}
	c.sessions.Put(ctx, sessionModeKey, mode.String())
	applog.Debug(ctx, "appearance mode stored", "mode", mode)
}

// Toggle flips the session's mode between light and dark and returns the
// new value.
func (c *Controller) Toggle(ctx context.Context) theme.Mode {
	next := c.Current(ctx).Toggle()
	c.Set(ctx, next)
	return next
}

// Palette resolves the current mode into a render palette.
func (c *Controller) Palette(ctx context.Context) theme.Palette {
	return theme.Resolve(c.Current(ctx))
}
