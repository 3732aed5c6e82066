// Package http exposes the calendar engine over a JSON API. Handlers perform
// no business logic; every semantic lives in the engine packages.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/cruze-calendar/internal/application"
	"github.com/example/cruze-calendar/internal/logging"
)

var (
	errBadRequestBody = errors.New("invalid request body")
	errInvalidID      = errors.New("invalid entity id")
	errInvalidDate    = errors.New("invalid date parameter")
	errInvalidView    = errors.New("invalid view parameter")
	errMissingToken   = errors.New("missing share token")
	errInvalidHour    = errors.New("hour must be between 0 and 23")
)

type errorResponse struct {
	Message string `json:"message"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		message = err.Error()
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}
	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
	case errors.Is(err, application.ErrNotFound):
		r.writeError(ctx, w, http.StatusNotFound, err)
	case errors.Is(err, application.ErrNoPendingShare):
		r.writeError(ctx, w, http.StatusConflict, err)
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "service call failed", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: http.StatusText(http.StatusInternalServerError)})
	}
}
