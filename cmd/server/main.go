package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/db"
	"folio/internal/db/mock"
	applog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/resume"
	"folio/internal/server"
	"folio/internal/views/theme"
	"folio/web"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	openContentFunc     = content.Open
	loadResumeFunc      = resume.Load
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	if cfg.Logging.Format != "" {
		if err := applog.SetFormat(cfg.Logging.Format); err != nil {
			applog.Error(ctx, "invalid log format", "format", cfg.Logging.Format, "error", err)
			return 1
		}
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, err := openContentFunc(ctx, cfg.Content.Path)
	if err != nil {
		applog.Error(ctx, "failed to load content", "path", cfg.Content.Path, "error", err)
		return 1
	}
	if cfg.Content.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil {
				applog.Error(ctx, "content watcher stopped", "error", err)
			}
		}()
	}

	doc, err := loadResumeFunc(cfg.Resume.File)
	switch {
	case errors.Is(err, resume.ErrNotFound):
		applog.Debug(ctx, "no resume configured", "file", cfg.Resume.File)
	case err != nil:
		applog.Error(ctx, "failed to load resume", "file", cfg.Resume.File, "error", err)
		return 1
	default:
		applog.Info(ctx, "resume loaded", "file", doc.Name, "pages", doc.Pages)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	mode, ok := theme.Parse(cfg.Appearance.Default)
	if !ok {
		applog.Warn(ctx, "unknown default appearance, using system", "mode", cfg.Appearance.Default)
		mode = theme.DefaultMode
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Database:   database,
		Content:    store,
		Submitter:  buildSubmitter(cfg, database),
		Resume:     doc,
		Appearance: mode,
		Timing:     cfg.Timing,
		Admin:      cfg.Admin,
		Metrics:    m,
		Static:     web.Static(),
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err())
	}

	cancel()
	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch {
	case cfg.UseMock:
		applog.Info(ctx, "using mock database")
		return newMockDatabaseFunc(ctx)
	case cfg.URL != "":
		return configureDatabase(cfg)
	default:
		applog.Info(ctx, "no database configured; contact messages will not be stored")
		return nil, nil
	}
}

// buildSubmitter chains the simulated delay to whatever delivery targets are
// configured. With none it is the delay alone.
func buildSubmitter(cfg config.Config, database *gorm.DB) contact.Submitter {
	var targets contact.Fanout
	if database != nil {
		targets = append(targets, contact.Recorder{DB: database})
	}
	if cfg.SMTP.Enabled() {
		targets = append(targets, contact.Mailer{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			From: cfg.SMTP.From,
			To:   cfg.SMTP.To,
		})
	}
	delayed := contact.Delayed{Delay: cfg.Timing.ContactDelay}
	if len(targets) > 0 {
		delayed.Next = targets
	}
	return delayed
}
