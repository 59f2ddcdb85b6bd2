package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dkovac/refuge/internal/model"
	"github.com/dkovac/refuge/internal/store"
)

// SurvivorsHandler handles survivor endpoints.
type SurvivorsHandler struct {
	DB *sql.DB
}

type createSurvivorItem struct {
	ResourceID int64 `json:"resource_id"`
	Quantity   int   `json:"quantity"`
}

type createSurvivorRequest struct {
	Name           string               `json:"name"`
	Age            int                  `json:"age"`
	GenderID       *int64               `json:"gender_id"`
	InventoryItems []createSurvivorItem `json:"inventory_items"`
}

// List handles GET /api/survivors.
func (h *SurvivorsHandler) List(w http.ResponseWriter, r *http.Request) {
	survivors, err := store.ListSurvivors(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list survivors", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list survivors")
		return
	}
	if survivors == nil {
		survivors = []model.Survivor{}
	}
	jsonResponse(w, http.StatusOK, survivors)
}

// Create handles POST /api/survivors.
func (h *SurvivorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSurvivorRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := model.FieldErrors{}
	if req.Name == "" {
		errs.Add("name", "Name is required.")
	}
	if req.Age < 0 {
		errs.Add("age", "Age must not be negative.")
	}
	if len(errs) > 0 {
		jsonResponse(w, http.StatusBadRequest, errs)
		return
	}

	items := make([]model.InventoryItem, 0, len(req.InventoryItems))
	for _, item := range req.InventoryItems {
		items = append(items, model.InventoryItem{ResourceID: item.ResourceID, Quantity: item.Quantity})
	}

	survivor, err := store.CreateSurvivor(r.Context(), h.DB, req.Name, req.Age, req.GenderID, items)
	if err != nil {
		if jsonValidationError(w, err) {
			return
		}
		slog.Error("failed to create survivor", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create survivor")
		return
	}

	slog.Info("survivor created", "survivor", survivor.Name, "items", len(items))
	jsonResponse(w, http.StatusCreated, survivor)
}

// Get handles GET /api/survivors/{id}.
func (h *SurvivorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survivor id")
		return
	}

	survivor, err := store.GetSurvivor(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get survivor", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get survivor")
		return
	}
	if survivor == nil {
		jsonError(w, http.StatusNotFound, "survivor not found")
		return
	}

	jsonResponse(w, http.StatusOK, survivor)
}

// GetInventory handles GET /api/survivors/{id}/inventory.
func (h *SurvivorsHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survivor id")
		return
	}

	survivor, err := store.GetSurvivor(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get survivor", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get survivor")
		return
	}
	if survivor == nil {
		jsonError(w, http.StatusNotFound, "survivor not found")
		return
	}

	inventory, err := store.GetSurvivorInventory(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get survivor inventory", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get survivor inventory")
		return
	}
	if inventory == nil {
		inventory = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, inventory)
}
