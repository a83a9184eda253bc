package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/acme-ice-cream/internal/apperror"
	"github.com/sakif/acme-ice-cream/internal/model"
	"github.com/sakif/acme-ice-cream/internal/service"
)

// FlavorService is what the flavor handlers need from the service layer.
// *service.FlavorService satisfies it; tests pass a mock.
type FlavorService interface {
	List(ctx context.Context) ([]model.Flavor, error)
	Create(ctx context.Context, name string) (*model.Flavor, error)
	Update(ctx context.Context, id int64, name string) (*model.Flavor, error)
	Delete(ctx context.Context, id int64) error
}

// FlavorHandler serves the /api/flavors endpoints. Each handler makes exactly
// one service call and maps its outcome to a response.
type FlavorHandler struct {
	svc    FlavorService
	logger *slog.Logger
}

// NewFlavorHandler creates a new FlavorHandler.
func NewFlavorHandler(svc FlavorService, logger *slog.Logger) *FlavorHandler {
	return &FlavorHandler{
		svc:    svc,
		logger: logger,
	}
}

// flavorRequest is the body accepted by create and update.
type flavorRequest struct {
	Name string `json:"name"`
}

// decodeName reads {"name": ...} from the request body.
//
// An empty body is treated like {}: the caller then reports the missing
// name, not a JSON error. A body that is not valid JSON, or where name is not
// a string, is a validation error of its own.
func (h *FlavorHandler) decodeName(r *http.Request) (string, error) {
	var req flavorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		h.logger.Warn("invalid flavor JSON", slog.String("error", err.Error()))
		return "", apperror.ValidationFailed("body", "Invalid JSON body")
	}
	return req.Name, nil
}

// flavorID parses the {id} path segment.
//
// The column is an integer, so a segment that is not one cannot match any
// row; it gets the same 404 as a well-formed id that does not exist.
func flavorID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NotFound("Flavor", raw)
	}
	return id, nil
}

// HandleList returns all flavors.
//
// HTTP: GET /api/flavors
//
//	200 [{"id":1,"name":"Coconut","updated_at":"..."}, ...]
func (h *FlavorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	flavors, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flavors)
}

// HandleCreate adds a flavor.
//
// HTTP: POST /api/flavors
// REQUEST BODY: {"name": "Vanilla"}
//
//	201 {"id":5,"name":"Vanilla","updated_at":"..."}
//	400 {"error":"Name is required"}
func (h *FlavorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	name, err := h.decodeName(r)
	if err != nil {
		writeError(w, err)
		return
	}

	flavor, err := h.svc.Create(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flavor)
}

// HandleUpdate renames a flavor.
//
// HTTP: PUT /api/flavors/{id}
// REQUEST BODY: {"name": "Toasted Coconut"}
//
// The name is checked before the id, so a request with neither gets 400.
//
//	200 {"id":1,"name":"Toasted Coconut","updated_at":"..."}
//	400 {"error":"Name is required"}
//	404 {"error":"Flavor not found"}
func (h *FlavorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	name, err := h.decodeName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := service.ValidateName(name); err != nil {
		writeError(w, err)
		return
	}

	id, err := flavorID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	flavor, err := h.svc.Update(r.Context(), id, name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flavor)
}

// HandleDelete removes a flavor.
//
// HTTP: DELETE /api/flavors/{id}
//
//	204 (no body)
//	404 {"error":"Flavor not found"}
func (h *FlavorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := flavorID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
