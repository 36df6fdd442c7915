package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func captureLogger(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(format, buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})
	return buf
}

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := captureLogger(t, FormatText)

	Info(context.Background(), "hello", "user", "test")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	for _, token := range []string{"ts=", "level=info", "msg=hello", "user=test"} {
		if !strings.Contains(line, token) {
			t.Fatalf("expected %q in log line, got %q", token, line)
		}
	}
}

func TestJSONFormatUsesRenamedKeys(t *testing.T) {
	buf := captureLogger(t, FormatJSON)

	Warn(context.Background(), "content reload failed", "path", "content.json")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json log line: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected level warn, got %v", entry["level"])
	}
	if entry["msg"] != "content reload failed" {
		t.Fatalf("expected msg key, got %v", entry["msg"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
}

func TestRequestIDIsAttached(t *testing.T) {
	buf := captureLogger(t, FormatText)

	ctx := WithRequestID(context.Background(), "req-42")
	Info(ctx, "rendered page")

	if !strings.Contains(buf.String(), "requestID=req-42") {
		t.Fatalf("expected request id in log line, got %q", buf.String())
	}
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("RequestID() = %q", got)
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := captureLogger(t, FormatText)
	t.Cleanup(func() { _ = SetLevel("info") })

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn) error = %v", err)
	}
	Info(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info line to be filtered, got %q", buf.String())
	}
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetFormatRejectsUnknown(t *testing.T) {
	original := Logger()
	t.Cleanup(func() { ReplaceLogger(original) })

	if err := SetFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if err := SetFormat("json"); err != nil {
		t.Fatalf("SetFormat(json) error = %v", err)
	}
}
