package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dkovac/refuge/internal/store"
)

// InfectionsHandler handles infection report endpoints.
type InfectionsHandler struct {
	DB *sql.DB
}

type createInfectionReportRequest struct {
	AuthorID int64 `json:"author_id"`
}

// Create handles POST /api/survivors/{id}/infection-reports. The path id is
// the survivor being reported; the body carries the reporting survivor.
func (h *InfectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	infectedID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survivor id")
		return
	}

	var req createInfectionReportRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := store.CreateInfectionReport(r.Context(), h.DB, req.AuthorID, infectedID)
	if err != nil {
		if jsonValidationError(w, err) {
			return
		}
		slog.Error("failed to create infection report", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create infection report")
		return
	}

	slog.Info("infection reported", "author", report.AuthorID, "infected", report.InfectedID)
	jsonResponse(w, http.StatusCreated, report)
}
