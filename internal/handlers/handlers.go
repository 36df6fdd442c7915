package handlers

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"folio/internal/appearance"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/gate"
	applog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/resume"
	"folio/internal/rotation"
	"folio/internal/views/components"
	"folio/internal/views/pages"
	"folio/internal/views/theme"
)

// Dependencies are the collaborators shared by the HTTP handlers.
type Dependencies struct {
	Sessions   *scs.SessionManager
	Database   *gorm.DB
	Content    *content.Store
	Appearance *appearance.Controller
	Gate       *gate.Tracker
	Submitter  contact.Submitter
	Metrics    *metrics.Metrics
	Resume     *resume.Resume
	Timing     config.TimingConfig
	Admin      config.AdminConfig
}

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	store          *content.Store
	appearanceCtl  *appearance.Controller
	loadingGate    *gate.Tracker
	submitter      contact.Submitter
	recorder       *metrics.Metrics
	resumeDoc      *resume.Resume
	timing         config.TimingConfig
	admin          config.AdminConfig
)

// Configure installs the shared dependencies used by the HTTP handlers.
// Missing appearance and gate collaborators are derived from the sessions
// and timing settings.
func Configure(deps Dependencies) {
	sessionManager = deps.Sessions
	database = deps.Database
	store = deps.Content
	submitter = deps.Submitter
	recorder = deps.Metrics
	resumeDoc = deps.Resume
	timing = deps.Timing
	admin = deps.Admin

	appearanceCtl = deps.Appearance
	if appearanceCtl == nil {
		appearanceCtl = appearance.New(deps.Sessions, theme.DefaultMode)
	}
	loadingGate = deps.Gate
	if loadingGate == nil {
		loadingGate = &gate.Tracker{Gate: gate.Gate{Delay: deps.Timing.LoadingDelay}, Sessions: deps.Sessions}
	}
}

func currentPortfolio() *content.Portfolio {
	if store == nil {
		return &content.Portfolio{}
	}
	if p := store.Current(); p != nil {
		return p
	}
	return &content.Portfolio{}
}

func rotationInterval() time.Duration {
	if timing.RotationInterval <= 0 {
		return rotation.DefaultInterval
	}
	return timing.RotationInterval
}

func descriptionLimit() int {
	if timing.DescriptionLimit <= 0 {
		return components.DefaultDescriptionLimit
	}
	return timing.DescriptionLimit
}

func buildView(r *http.Request) pages.View {
	p := currentPortfolio()
	return pages.View{
		Portfolio: p,
		Palette:   appearanceCtl.Palette(r.Context()),
		Menu:      components.MenuClosed,
		Ticker: components.Ticker{
			Labels:   p.Hero.Skills,
			Interval: rotationInterval(),
			Stream:   components.SkillStreamPath,
		},
		Contact:          components.ContactFormData{Delay: timing.ContactDelay},
		DescriptionLimit: descriptionLimit(),
	}
}

func render(w http.ResponseWriter, r *http.Request, view string, component templ.Component) {
	renderStatus(w, r, http.StatusOK, view, component)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, view string, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render view", "view", view, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	recorder.PageRendered(view)
}
