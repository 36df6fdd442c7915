package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "folio/internal/log"
)

// DefaultDebounce is how long Watch waits for writes to settle before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Store hands out the current content snapshot. Snapshots are replaced
// whole, so readers never observe a partially loaded document.
type Store struct {
	path     string
	current  atomic.Pointer[Portfolio]
	Debounce time.Duration
	// OnReload, when set, is called after each successful reload.
	OnReload func(*Portfolio)
}

// Open loads path and returns a store serving it. Validation issues are logged.
func Open(ctx context.Context, path string) (*Store, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	report(ctx, path, p)
	s := &Store{path: path, Debounce: DefaultDebounce}
	s.current.Store(p)
	return s, nil
}

// NewStatic returns a store that always serves p.
func NewStatic(p *Portfolio) *Store {
	s := &Store{Debounce: DefaultDebounce}
	s.current.Store(p)
	return s
}

func (s *Store) Path() string { return s.path }

// Current returns the active snapshot.
func (s *Store) Current() *Portfolio {
	return s.current.Load()
}

// Reload re-reads the backing file. On failure the previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("content store has no backing file")
	}
	p, err := Load(s.path)
	if err != nil {
		return err
	}
	report(ctx, s.path, p)
	s.current.Store(p)
	applog.Info(ctx, "content reloaded", "path", s.path)
	if s.OnReload != nil {
		s.OnReload(p)
	}
	return nil
}

// Watch reloads the store whenever its file changes, until ctx ends. The
// parent directory is watched so editors that replace files are seen.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("content store has no backing file")
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve content path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	applog.Info(ctx, "watching content for changes", "path", target)

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)) {
				continue
			}
			applog.Debug(ctx, "content change detected", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := s.Reload(ctx); err != nil {
				applog.Error(ctx, "content reload failed; keeping previous snapshot", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			applog.Warn(ctx, "content watcher error", "error", err)
		}
	}
}

func report(ctx context.Context, path string, p *Portfolio) {
	for _, issue := range Validate(p) {
		applog.Warn(ctx, "content issue", "path", path, "field", issue.Field, "problem", issue.Message)
	}
}
