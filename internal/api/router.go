package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	resourcesHandler := &ResourcesHandler{DB: db}
	survivorsHandler := &SurvivorsHandler{DB: db}
	locationsHandler := &LocationsHandler{DB: db}
	infectionsHandler := &InfectionsHandler{DB: db}
	tradesHandler := &TradesHandler{DB: db}

	// Catalogs.
	mux.HandleFunc("GET /api/resources", resourcesHandler.List)
	mux.HandleFunc("POST /api/resources", resourcesHandler.Create)
	mux.HandleFunc("GET /api/genders", resourcesHandler.ListGenders)

	// Survivors.
	mux.HandleFunc("GET /api/survivors", survivorsHandler.List)
	mux.HandleFunc("POST /api/survivors", survivorsHandler.Create)
	mux.HandleFunc("GET /api/survivors/{id}", survivorsHandler.Get)
	mux.HandleFunc("GET /api/survivors/{id}/inventory", survivorsHandler.GetInventory)

	// Location logs.
	mux.HandleFunc("POST /api/survivors/{id}/location-logs", locationsHandler.Create)
	mux.HandleFunc("GET /api/location-logs", locationsHandler.ListLatest)

	// Infection reports.
	mux.HandleFunc("POST /api/survivors/{id}/infection-reports", infectionsHandler.Create)

	// Trades.
	mux.HandleFunc("POST /api/survivors/{id}/trade", tradesHandler.Create)
	mux.HandleFunc("GET /api/trades", tradesHandler.List)

	return mux
}
