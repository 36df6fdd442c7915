// Package export renders the settled portfolio and its fragments into a
// directory that any static file host can serve.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"folio/internal/config"
	"folio/internal/content"
	applog "folio/internal/log"
	"folio/internal/resume"
	"folio/internal/rotation"
	"folio/internal/views/components"
	"folio/internal/views/pages"
	"folio/internal/views/theme"
)

// Options controls a static export.
type Options struct {
	Portfolio *content.Portfolio
	Out       string
	Mode      theme.Mode
	Timing    config.TimingConfig
	Assets    fs.FS
	Resume    *resume.Resume
	// Year is stamped into the footer; zero means the current year.
	Year int
}

// Result lists the files written, relative to Options.Out.
type Result struct {
	Files []string
}

// Site writes the page, every fragment the page can request, the embedded
// assets and the résumé into opts.Out. A positive Timing.LoadingDelay keeps
// the exported page behind the loader for that long on every visit.
func Site(ctx context.Context, opts Options) (Result, error) {
	if opts.Portfolio == nil {
		return Result{}, errors.New("export: no portfolio content")
	}
	if strings.TrimSpace(opts.Out) == "" {
		return Result{}, errors.New("export: output directory must not be empty")
	}
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	w := &writer{root: opts.Out}
	view := staticView(opts)

	if err := w.component(ctx, "index.html", pages.StaticHome(view, opts.Timing.LoadingDelay)); err != nil {
		return w.result(), err
	}

	for _, state := range []components.MenuState{components.MenuClosed, components.MenuOpen} {
		if err := w.component(ctx, urlPath(components.MenuFragmentPath(state)), components.MobileMenu(state)); err != nil {
			return w.result(), err
		}
	}

	for _, project := range opts.Portfolio.Projects {
		if !safeSegment(project.ID) {
			applog.Warn(ctx, "skipping description fragments for unsafe project id", "id", project.ID)
			continue
		}
		for _, state := range []components.Expansion{components.Collapsed, components.Expanded} {
			d := components.Description{ID: project.ID, Text: project.Description, Limit: view.DescriptionLimit, State: state}
			name := filepath.ToSlash(filepath.Join("fragments", "projects", project.ID, "description", state.String()+".html"))
			if err := w.component(ctx, name, components.ExpandableDescription(d)); err != nil {
				return w.result(), err
			}
		}
	}

	if opts.Assets != nil {
		if err := w.tree(ctx, "static", opts.Assets); err != nil {
			return w.result(), err
		}
	}

	if opts.Resume != nil {
		if err := w.file("resume.pdf", opts.Resume.Data); err != nil {
			return w.result(), err
		}
		if err := w.file("resume.txt", []byte(opts.Resume.Text)); err != nil {
			return w.result(), err
		}
	}

	applog.Info(ctx, "static export complete", "out", opts.Out, "files", len(w.files))
	return w.result(), nil
}

func staticView(opts Options) pages.View {
	interval := opts.Timing.RotationInterval
	if interval <= 0 {
		interval = rotation.DefaultInterval
	}
	limit := opts.Timing.DescriptionLimit
	if limit <= 0 {
		limit = components.DefaultDescriptionLimit
	}
	year := opts.Year
	if year == 0 {
		year = time.Now().Year()
	}
	return pages.View{
		Portfolio: opts.Portfolio,
		Palette:   theme.Resolve(opts.Mode),
		Menu:      components.MenuClosed,
		Ticker: components.Ticker{
			Labels:   opts.Portfolio.Hero.Skills,
			Interval: interval,
		},
		Contact:          components.ContactFormData{Static: true, Delay: opts.Timing.ContactDelay},
		DescriptionLimit: limit,
		Year:             year,
		Static:           true,
	}
}

func urlPath(p string) string {
	return strings.TrimPrefix(p, "/")
}

func safeSegment(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

type writer struct {
	root  string
	files []string
}

func (w *writer) result() Result {
	return Result{Files: append([]string(nil), w.files...)}
}

func (w *writer) component(ctx context.Context, name string, c templ.Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return w.file(name, buf.Bytes())
}

func (w *writer) file(name string, data []byte) error {
	path := filepath.Join(w.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.files = append(w.files, name)
	return nil
}

func (w *writer) tree(ctx context.Context, prefix string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", p, err)
		}
		return w.file(prefix+"/"+p, data)
	})
}
