// Package handler implements the trigger contract: an invocation payload in,
// a response with a numeric status code and a JSON body out. The caller
// always receives a well-formed JSON body.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/costspectre/internal/engine"
)

// Request is the invocation payload. Triggers may attach a source marker;
// the engine does not interpret it.
type Request struct {
	Source string `json:"source,omitempty"`
}

// Response is the invocation result. Body is always valid JSON: the full
// report on success, an error document on failure.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Engine is the aggregator surface the handler drives.
type Engine interface {
	Run(ctx context.Context) (*engine.Report, error)
}

// Handler is the outermost boundary of an invocation. Anything escaping the
// engine is caught exactly once here and turned into a 500 response.
type Handler struct {
	engine    Engine
	workspace string
	now       func() time.Time
}

// New creates a handler. workspace identifies the target in failure bodies;
// now may be nil, meaning time.Now.
func New(eng Engine, workspace string, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{engine: eng, workspace: workspace, now: now}
}

// Handle runs one invocation end to end.
func (h *Handler) Handle(ctx context.Context, _ Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Invocation panicked", "panic", r)
			resp = h.failure(fmt.Sprintf("internal error: %v", r))
		}
	}()

	report, err := h.engine.Run(ctx)
	if err != nil {
		slog.Error("Invocation failed", "error", err)
		return h.failure(err.Error())
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		slog.Error("Failed to encode report", "error", err)
		return h.failure(fmt.Sprintf("encode report: %v", err))
	}

	return Response{StatusCode: 200, Body: string(body)}
}

func (h *Handler) failure(message string) Response {
	body, err := json.MarshalIndent(map[string]string{
		"error":     message,
		"workspace": h.workspace,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		// Unreachable with string values, but the contract says the body is
		// always JSON, so keep a literal fallback.
		body = []byte(`{"error": "failed to encode error response"}`)
	}
	return Response{StatusCode: 500, Body: string(body)}
}
