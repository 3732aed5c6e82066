package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/cruze-calendar/internal/export"
	"github.com/example/cruze-calendar/internal/model"
	"github.com/example/cruze-calendar/internal/window"
)

type appointmentService interface {
	Query(reference time.Time, g window.Granularity, query string) []model.Appointment
	Export(reference time.Time, g window.Granularity, query string) (export.File, bool)
	SaveAppointment(ctx context.Context, a model.Appointment) (model.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

// AppointmentHandler serves the windowed appointment views, upserts, deletes
// and the CSV export of the current filter.
type AppointmentHandler struct {
	service   appointmentService
	responder responder
	now       func() time.Time
}

// NewAppointmentHandler wires the handler. A nil clock defaults to time.Now.
func NewAppointmentHandler(service appointmentService, logger *slog.Logger, now func() time.Time) *AppointmentHandler {
	if now == nil {
		now = time.Now
	}
	return &AppointmentHandler{service: service, responder: newResponder(logger), now: now}
}

// List renders the appointments in the window described by the date and view
// query parameters, narrowed by q.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	reference, granularity, query, ok := h.viewParams(w, r)
	if !ok {
		return
	}
	appointments := h.service.Query(reference, granularity, query)
	if appointments == nil {
		appointments = []model.Appointment{}
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointments)
}

// Save upserts an appointment: an existing id edits in place, a new or empty
// id creates.
func (h *AppointmentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var appointment model.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	saved, err := h.service.SaveAppointment(r.Context(), appointment)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, saved)
}

// Delete removes an appointment by id. Deleting an unknown id succeeds.
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// ExportCSV streams the filtered set as a CSV download. An empty filtered set
// produces no file and responds 204.
func (h *AppointmentHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	reference, granularity, query, ok := h.viewParams(w, r)
	if !ok {
		return
	}

	file, ok := h.service.Export(reference, granularity, query)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}

func (h *AppointmentHandler) viewParams(w http.ResponseWriter, r *http.Request) (time.Time, window.Granularity, string, bool) {
	values := r.URL.Query()

	reference := h.now()
	if raw := strings.TrimSpace(values.Get("date")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return time.Time{}, "", "", false
		}
		reference = parsed
	}

	granularity := window.Day
	if raw := strings.TrimSpace(values.Get("view")); raw != "" {
		parsed, err := window.ParseGranularity(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidView)
			return time.Time{}, "", "", false
		}
		granularity = parsed
	}

	return reference, granularity, values.Get("q"), true
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
