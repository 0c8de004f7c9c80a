package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/costspectre/internal/engine"
)

type fakeEngine struct {
	report *engine.Report
	err    error
	panics bool
}

func (f *fakeEngine) Run(_ context.Context) (*engine.Report, error) {
	if f.panics {
		panic("nil map write")
	}
	return f.report, f.err
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
}

func TestHandle_Success(t *testing.T) {
	eng := &fakeEngine{report: &engine.Report{Workspace: "dev", Project: "demo"}}
	h := New(eng, "dev", fixedClock)

	resp := h.Handle(context.Background(), Request{Source: "schedule"})
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var report engine.Report
	if err := json.Unmarshal([]byte(resp.Body), &report); err != nil {
		t.Fatalf("body must be the JSON report: %v", err)
	}
	if report.Workspace != "dev" {
		t.Fatalf("expected the report in the body, got %+v", report)
	}
}

func TestHandle_EngineError(t *testing.T) {
	h := New(&fakeEngine{err: errors.New("credentials expired")}, "prod", fixedClock)

	resp := h.Handle(context.Background(), Request{})
	if resp.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("failure body must be JSON: %v", err)
	}
	if body["error"] != "credentials expired" {
		t.Fatalf("expected the engine error, got %q", body["error"])
	}
	if body["workspace"] != "prod" {
		t.Fatalf("expected the workspace, got %q", body["workspace"])
	}
	if body["timestamp"] != fixedClock().Format(time.RFC3339) {
		t.Fatalf("expected the fixed timestamp, got %q", body["timestamp"])
	}
}

func TestHandle_PanicBecomesFailureResponse(t *testing.T) {
	h := New(&fakeEngine{panics: true}, "dev", fixedClock)

	resp := h.Handle(context.Background(), Request{})
	if resp.StatusCode != 500 {
		t.Fatalf("a panic must become a 500, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("failure body must be JSON: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("failure body must carry the panic message")
	}
}
