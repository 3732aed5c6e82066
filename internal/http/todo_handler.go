package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/cruze-calendar/internal/model"
)

type todoService interface {
	Todos() []model.Todo
	AddTodo(ctx context.Context, text string) (model.Todo, error)
	ToggleTodo(ctx context.Context, id string) error
	DeleteTodo(ctx context.Context, id string) error
	ScheduleTodo(ctx context.Context, todoID string, hour int, date time.Time) (model.Appointment, bool, error)
}

// TodoHandler serves the task list and the task-to-appointment conversion.
type TodoHandler struct {
	service   todoService
	responder responder
}

// NewTodoHandler wires the handler.
func NewTodoHandler(service todoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{service: service, responder: newResponder(logger)}
}

// List renders the task list, newest first.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos := h.service.Todos()
	if todos == nil {
		todos = []model.Todo{}
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, todos)
}

// Add prepends a new todo.
func (h *TodoHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	todo, err := h.service.AddTodo(r.Context(), req.Text)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, todo)
}

// Toggle flips the completed flag. Unknown ids succeed without change.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request, id string) {
	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	if err := h.service.ToggleTodo(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Delete removes a todo by id. Unknown ids succeed without change.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	if err := h.service.DeleteTodo(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Schedule converts the todo into an appointment at the requested hour and
// optional date. An unknown todo id is a no-op and responds 204.
func (h *TodoHandler) Schedule(w http.ResponseWriter, r *http.Request, id string) {
	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req struct {
		Hour int    `json:"hour"`
		Date string `json:"date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if req.Hour < 0 || req.Hour > 23 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidHour)
		return
	}

	var date time.Time
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		date = parsed
	}

	appointment, scheduled, err := h.service.ScheduleTodo(r.Context(), id, req.Hour, date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !scheduled {
		h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, appointment)
}
