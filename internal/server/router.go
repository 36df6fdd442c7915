package server

import (
	"context"
	"io/fs"
	"net/http"

	"folio/internal/handlers"
	applog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/views/components"
)

func newRouter(static fs.FS, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	ctx := context.Background()
	applog.Debug(ctx, "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(ctx, "route registered", "path", "/healthz")
	mux.HandleFunc("/{$}", handlers.Home)
	applog.Debug(ctx, "route registered", "path", "/")
	mux.HandleFunc("/sections", handlers.Sections)
	applog.Debug(ctx, "route registered", "path", "/sections")
	mux.HandleFunc("/appearance/toggle", handlers.ToggleAppearance)
	mux.HandleFunc("/appearance", handlers.SetAppearance)
	applog.Debug(ctx, "route registered", "path", "/appearance")
	mux.HandleFunc("/fragments/menu/{file}", handlers.MenuFragment)
	mux.HandleFunc("/fragments/projects/{id}/description/{file}", handlers.ProjectDescription)
	applog.Debug(ctx, "route registered", "path", "/fragments/", "fragments", true)
	mux.HandleFunc(components.SkillStreamPath, handlers.SkillStream)
	applog.Debug(ctx, "route registered", "path", components.SkillStreamPath, "stream", true)
	mux.HandleFunc("/contact", handlers.SubmitContact)
	applog.Debug(ctx, "route registered", "path", "/contact")
	mux.HandleFunc("/resume.pdf", handlers.ResumePDF)
	mux.HandleFunc("/resume.txt", handlers.ResumeText)
	applog.Debug(ctx, "route registered", "path", "/resume.pdf")
	mux.HandleFunc("/admin/messages", handlers.Inbox)
	applog.Debug(ctx, "route registered", "path", "/admin/messages", "protected", true)

	if m != nil {
		mux.Handle("/metrics", m.Handler())
		applog.Debug(ctx, "route registered", "path", "/metrics")
	}
	if static != nil {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static)))
		applog.Debug(ctx, "route registered", "path", "/static/", "static", true)
	}
	return mux
}
