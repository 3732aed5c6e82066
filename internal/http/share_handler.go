package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/cruze-calendar/internal/model"
	"github.com/example/cruze-calendar/internal/share"
)

type shareService interface {
	StageIncomingShare(a model.Appointment)
	PendingShare() (model.Appointment, bool)
	AcceptPendingShare(ctx context.Context) (model.Appointment, error)
	DiscardPendingShare()
}

type stageResponse struct {
	Staged      bool               `json:"staged"`
	Appointment *model.Appointment `json:"appointment,omitempty"`
}

// ShareHandler stages incoming share tokens and resolves the pending share.
type ShareHandler struct {
	service   shareService
	responder responder
	param     string
}

// NewShareHandler wires the handler. param names the query parameter carrying
// share tokens; empty falls back to the codec default.
func NewShareHandler(service shareService, logger *slog.Logger, param string) *ShareHandler {
	if strings.TrimSpace(param) == "" {
		param = share.DefaultParam
	}
	return &ShareHandler{service: service, responder: newResponder(logger), param: param}
}

// Stage decodes the share token from the request URL and stages it as the
// pending incoming share. A malformed token is logged and swallowed: the
// response reports staged=false and nothing else happens.
func (h *ShareHandler) Stage(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.URL.Query().Get(h.param)) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingToken)
		return
	}

	appointment, _, ok, err := share.FromURL(r.URL.String(), h.param)
	if err != nil {
		h.responder.loggerFor(r.Context()).WarnContext(r.Context(), "ignoring malformed share token", "error", err)
	}
	if !ok {
		h.responder.writeJSON(r.Context(), w, http.StatusOK, stageResponse{Staged: false})
		return
	}

	h.service.StageIncomingShare(appointment)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, stageResponse{Staged: true, Appointment: &appointment})
}

// Pending renders the staged incoming share, if any.
func (h *ShareHandler) Pending(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.service.PendingShare()
	if !ok {
		h.responder.writeJSON(r.Context(), w, http.StatusOK, stageResponse{Staged: false})
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, stageResponse{Staged: true, Appointment: &appointment})
}

// Accept commits the pending share to the store under a fresh identity.
func (h *ShareHandler) Accept(w http.ResponseWriter, r *http.Request) {
	accepted, err := h.service.AcceptPendingShare(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, accepted)
}

// Discard drops the pending share without mutating the store.
func (h *ShareHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.service.DiscardPendingShare()
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
