package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dkovac/refuge/internal/model"
	"github.com/dkovac/refuge/internal/store"
)

// LocationsHandler handles location log endpoints.
type LocationsHandler struct {
	DB *sql.DB
}

type createLocationLogRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Create handles POST /api/survivors/{id}/location-logs.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	survivorID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survivor id")
		return
	}

	var req createLocationLogRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := model.FieldErrors{}
	if req.Latitude == nil {
		errs.Add("latitude", "Latitude is required.")
	}
	if req.Longitude == nil {
		errs.Add("longitude", "Longitude is required.")
	}
	if len(errs) > 0 {
		jsonResponse(w, http.StatusBadRequest, errs)
		return
	}

	log, err := store.CreateLocationLog(r.Context(), h.DB, survivorID, *req.Latitude, *req.Longitude)
	if err != nil {
		if jsonValidationError(w, err) {
			return
		}
		slog.Error("failed to create location log", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create location log")
		return
	}

	slog.Info("location logged", "survivor", log.SurvivorName, "lat", log.Latitude, "lon", log.Longitude)
	jsonResponse(w, http.StatusCreated, log)
}

// ListLatest handles GET /api/location-logs.
func (h *LocationsHandler) ListLatest(w http.ResponseWriter, r *http.Request) {
	logs, err := store.ListLatestLocations(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list latest locations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list latest locations")
		return
	}
	if logs == nil {
		logs = []model.LocationLog{}
	}
	jsonResponse(w, http.StatusOK, logs)
}
