package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/cruze-calendar/internal/application"
	"github.com/example/cruze-calendar/internal/model"
)

type directoryService interface {
	Contacts() []model.Contact
	SaveContact(ctx context.Context, c model.Contact) (model.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	Groups() []model.Group
	CreateGroup(ctx context.Context, g model.Group) (model.Group, error)
	ColorLabels() model.ColorLabels
	UpdateColorLabels(ctx context.Context, labels model.ColorLabels) error
	ImportBundle(ctx context.Context, b model.Bundle) (application.ImportResult, error)
}

// DirectoryHandler serves contacts, groups, the color-label mapping and the
// import endpoint.
type DirectoryHandler struct {
	service   directoryService
	responder responder
}

// NewDirectoryHandler wires the handler.
func NewDirectoryHandler(service directoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{service: service, responder: newResponder(logger)}
}

// ListContacts renders the contact book.
func (h *DirectoryHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts := h.service.Contacts()
	if contacts == nil {
		contacts = []model.Contact{}
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, contacts)
}

// SaveContact upserts a contact under merge-by-name semantics.
func (h *DirectoryHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	saved, err := h.service.SaveContact(r.Context(), contact)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, saved)
}

// DeleteContact removes a contact by id. Unknown ids succeed without change.
func (h *DirectoryHandler) DeleteContact(w http.ResponseWriter, r *http.Request, id string) {
	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// ListGroups renders the groups.
func (h *DirectoryHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.service.Groups()
	if groups == nil {
		groups = []model.Group{}
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, groups)
}

// CreateGroup appends a group. Duplicate names are permitted.
func (h *DirectoryHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var group model.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	created, err := h.service.CreateGroup(r.Context(), group)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, created)
}

// GetLabels renders the color-label mapping.
func (h *DirectoryHandler) GetLabels(w http.ResponseWriter, r *http.Request) {
	h.responder.writeJSON(r.Context(), w, http.StatusOK, h.service.ColorLabels())
}

// UpdateLabels replaces the color-label mapping.
func (h *DirectoryHandler) UpdateLabels(w http.ResponseWriter, r *http.Request) {
	var labels model.ColorLabels
	if err := json.NewDecoder(r.Body).Decode(&labels); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := h.service.UpdateColorLabels(r.Context(), labels); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, labels)
}

// Import merges an external bundle without duplicating existing identities.
func (h *DirectoryHandler) Import(w http.ResponseWriter, r *http.Request) {
	var bundle model.Bundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.ImportBundle(r.Context(), bundle)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, result)
}
