package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "folio/internal/log"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status   string        `json:"status"`
	Time     time.Time     `json:"time"`
	Content  contentHealth `json:"content"`
	Database string        `json:"database"`
}

type contentHealth struct {
	Loaded   bool `json:"loaded"`
	Projects int  `json:"projects"`
}

// Health reports readiness: a content snapshot is loaded and, when the inbox
// is backed by a database, that database answers a ping. Anything else is
// 503 so load balancers stop routing to the instance.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:   "ok",
		Time:     time.Now().UTC(),
		Database: databaseHealth(r.Context()),
	}
	if store != nil {
		if p := store.Current(); p != nil {
			resp.Content = contentHealth{Loaded: true, Projects: len(p.Projects)}
		}
	}

	code := http.StatusOK
	if !resp.Content.Loaded || resp.Database == "unreachable" {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
		applog.Warn(r.Context(), "health check failing", "content_loaded", resp.Content.Loaded, "database", resp.Database)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		return
	}
	applog.Debug(r.Context(), "health check responded", "status", resp.Status)
}

func databaseHealth(ctx context.Context) string {
	if database == nil {
		return "disabled"
	}
	sqlDB, err := database.DB()
	if err != nil {
		applog.Error(ctx, "failed to access database handle", "error", err)
		return "unreachable"
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		applog.Error(ctx, "database ping failed", "error", err)
		return "unreachable"
	}
	return "ok"
}
