package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dkovac/refuge/internal/model"
	"github.com/dkovac/refuge/internal/store"
)

// ResourcesHandler handles resource catalog endpoints.
type ResourcesHandler struct {
	DB *sql.DB
}

type createResourceRequest struct {
	Name  string      `json:"name"`
	Price model.Price `json:"price"`
}

// List handles GET /api/resources.
func (h *ResourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := store.ListResources(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list resources", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list resources")
		return
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	jsonResponse(w, http.StatusOK, resources)
}

// Create handles POST /api/resources.
func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	resource, err := store.CreateResource(r.Context(), h.DB, req.Name, req.Price)
	if err != nil {
		slog.Error("failed to create resource", "error", err)
		jsonError(w, http.StatusBadRequest, "failed to create resource: name may already exist")
		return
	}

	slog.Info("resource created", "resource", resource.Name, "price", resource.Price.String())
	jsonResponse(w, http.StatusCreated, resource)
}

// ListGenders handles GET /api/genders.
func (h *ResourcesHandler) ListGenders(w http.ResponseWriter, r *http.Request) {
	genders, err := store.ListGenders(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list genders", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list genders")
		return
	}
	if genders == nil {
		genders = []model.Gender{}
	}
	jsonResponse(w, http.StatusOK, genders)
}
