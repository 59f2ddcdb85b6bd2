package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dkovac/refuge/internal/model"
	"github.com/dkovac/refuge/internal/store"
	"github.com/dkovac/refuge/internal/trade"
)

// TradesHandler handles barter endpoints.
type TradesHandler struct {
	DB *sql.DB
}

type tradeRequest struct {
	PartnerID      int64         `json:"partner_id"`
	OfferedItems   []trade.Entry `json:"offered_items"`
	RequestedItems []trade.Entry `json:"requested_items"`
}

// Create handles POST /api/survivors/{id}/trade. The path id is the
// initiating survivor. Validation failures return the per-field error map;
// settlement failures return 500 and are safe to resubmit.
func (h *TradesHandler) Create(w http.ResponseWriter, r *http.Request) {
	survivorID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid survivor id")
		return
	}

	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settled, err := store.ExecuteTrade(r.Context(), h.DB, trade.Proposal{
		SurvivorID: survivorID,
		PartnerID:  req.PartnerID,
		Offered:    trade.Basket(req.OfferedItems),
		Requested:  trade.Basket(req.RequestedItems),
	})
	if err != nil {
		if jsonValidationError(w, err) {
			return
		}
		if errors.Is(err, store.ErrSettlementFailed) {
			slog.Error("trade settlement failed", "survivor", survivorID, "partner", req.PartnerID, "error", err)
			jsonError(w, http.StatusInternalServerError, "trade could not be settled, no changes were made")
			return
		}
		slog.Error("trade failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "trade failed")
		return
	}

	slog.Info("trade settled", "trade", settled.ID,
		"survivor", settled.SurvivorName, "partner", settled.PartnerName,
		"items", len(settled.Items))
	jsonResponse(w, http.StatusOK, settled)
}

// List handles GET /api/trades.
func (h *TradesHandler) List(w http.ResponseWriter, r *http.Request) {
	var survivorID int64
	if v := r.URL.Query().Get("survivor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid survivor_id")
			return
		}
		survivorID = id
	}

	trades, err := store.ListTrades(r.Context(), h.DB, survivorID)
	if err != nil {
		slog.Error("failed to list trades", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}
	if trades == nil {
		trades = []model.Trade{}
	}
	jsonResponse(w, http.StatusOK, trades)
}
