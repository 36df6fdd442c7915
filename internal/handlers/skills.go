package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	applog "folio/internal/log"
	"folio/internal/rotation"
	"folio/internal/views/components"
)

// SkillStream pushes the hero's rotating skill label as server-sent events.
// Each event carries the rendered label fragment; the stream ends when the
// visitor disconnects.
func SkillStream(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	labels := currentPortfolio().Hero.Skills
	if len(labels) == 0 {
		http.NotFound(w, r)
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		applog.Error(r.Context(), "skill stream cannot flush", "error", err)
		return
	}

	closed := recorder.StreamOpened()
	defer closed()

	ctx := r.Context()
	applog.Debug(ctx, "skill stream opened", "labels", len(labels))
	rotator := rotation.New(labels, rotationInterval())
	err := rotator.Run(ctx, func(index int, label string) error {
		var buf bytes.Buffer
		if err := components.SkillLabel(label).Render(ctx, &buf); err != nil {
			return fmt.Errorf("render skill label: %w", err)
		}
		if err := writeEvent(w, "skill", buf.String()); err != nil {
			return err
		}
		return rc.Flush()
	})
	if err != nil && ctx.Err() == nil {
		applog.Error(ctx, "skill stream ended", "error", err)
		return
	}
	applog.Debug(ctx, "skill stream closed")
}

func writeEvent(w http.ResponseWriter, event, data string) error {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteByte('\n')
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := w.Write([]byte(b.String()))
	return err
}
