package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkovac/refuge/internal/db"
	"github.com/dkovac/refuge/internal/model"
	"github.com/dkovac/refuge/internal/store"
)

func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB, map[string]int64) {
	t.Helper()
	database := db.NewTestDB(t)
	if err := store.SeedCatalogs(context.Background(), database); err != nil {
		t.Fatalf("seeding catalogs: %v", err)
	}

	server := httptest.NewServer(NewRouter(database))
	t.Cleanup(server.Close)

	resources, err := store.ListResources(context.Background(), database)
	if err != nil {
		t.Fatalf("listing resources: %v", err)
	}
	ids := map[string]int64{}
	for _, r := range resources {
		ids[r.Name] = r.ID
	}
	return server, database, ids
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func createSurvivor(t *testing.T, serverURL, name string, items []map[string]any) model.Survivor {
	t.Helper()
	resp := postJSON(t, serverURL+"/api/survivors", map[string]any{
		"name":            name,
		"age":             30,
		"inventory_items": items,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating survivor %s: expected 201, got %d", name, resp.StatusCode)
	}
	var s model.Survivor
	json.NewDecoder(resp.Body).Decode(&s)
	return s
}

func TestResourcesEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/resources")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var resources []model.Resource
	json.NewDecoder(resp.Body).Decode(&resources)
	if len(resources) != 4 {
		t.Errorf("expected 4 seeded resources, got %d", len(resources))
	}

	// Create a new one.
	resp = postJSON(t, server.URL+"/api/resources", map[string]any{"name": "Fuel", "price": "5.25"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var fuel model.Resource
	json.NewDecoder(resp.Body).Decode(&fuel)
	if fuel.Price != 525 {
		t.Errorf("expected price 525 cents, got %d", fuel.Price)
	}
}

func TestResourceNegativePriceRejected(t *testing.T) {
	server, _, _ := setupTestServer(t)

	for _, price := range []string{"-1.00", "-0.50"} {
		resp := postJSON(t, server.URL+"/api/resources", map[string]any{"name": "Scrap", "price": price})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("price %s: expected 400, got %d", price, resp.StatusCode)
		}
	}
}

func TestInventoryKeepsZeroPrice(t *testing.T) {
	server, database, _ := setupTestServer(t)

	free, err := store.CreateResource(context.Background(), database, "Scrap", 0)
	if err != nil {
		t.Fatalf("creating resource: %v", err)
	}

	s := createSurvivor(t, server.URL, "Rick", []map[string]any{
		{"resource_id": free.ID, "quantity": 2},
	})

	resp, err := http.Get(fmt.Sprintf("%s/api/survivors/%d/inventory", server.URL, s.ID))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	// A 0.00 catalog price must survive serialization, not be omitted.
	var raw []map[string]json.RawMessage
	json.NewDecoder(resp.Body).Decode(&raw)
	if len(raw) != 1 {
		t.Fatalf("expected 1 inventory row, got %d", len(raw))
	}
	price, ok := raw[0]["resource_price"]
	if !ok {
		t.Fatalf("resource_price missing from payload: %v", raw[0])
	}
	if string(price) != `"0.00"` {
		t.Errorf(`expected "0.00", got %s`, price)
	}
}

func TestGendersEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/genders")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var genders []model.Gender
	json.NewDecoder(resp.Body).Decode(&genders)
	if len(genders) != 3 {
		t.Errorf("expected 3 genders, got %d", len(genders))
	}
}

func TestSurvivorCreateAndInventory(t *testing.T) {
	server, _, res := setupTestServer(t)

	s := createSurvivor(t, server.URL, "Rick", []map[string]any{
		{"resource_id": res["Water"], "quantity": 4},
	})

	resp, err := http.Get(fmt.Sprintf("%s/api/survivors/%d/inventory", server.URL, s.ID))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var inventory []model.InventoryItem
	json.NewDecoder(resp.Body).Decode(&inventory)
	if len(inventory) != 1 || inventory[0].Quantity != 4 {
		t.Errorf("unexpected inventory: %v", inventory)
	}
	if inventory[0].ResourceName != "Water" || inventory[0].ResourcePrice != 400 {
		t.Errorf("expected joined resource fields, got %+v", inventory[0])
	}
}

func TestSurvivorCreateValidation(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/survivors", map[string]any{"age": -1})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var fields map[string][]string
	json.NewDecoder(resp.Body).Decode(&fields)
	if len(fields["name"]) == 0 || len(fields["age"]) == 0 {
		t.Errorf("expected name and age errors, got %v", fields)
	}
}

func TestTradeEndpoint(t *testing.T) {
	server, _, res := setupTestServer(t)

	rick := createSurvivor(t, server.URL, "Rick", []map[string]any{
		{"resource_id": res["Water"], "quantity": 3},
	})
	daryl := createSurvivor(t, server.URL, "Daryl", []map[string]any{
		{"resource_id": res["Ammunition"], "quantity": 10},
	})

	// 1 Water (4.00) for 4 Ammunition (4.00).
	resp := postJSON(t, fmt.Sprintf("%s/api/survivors/%d/trade", server.URL, rick.ID), map[string]any{
		"partner_id":      daryl.ID,
		"offered_items":   []map[string]any{{"resource_id": res["Water"], "quantity": 1}},
		"requested_items": []map[string]any{{"resource_id": res["Ammunition"], "quantity": 4}},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var settled model.Trade
	json.NewDecoder(resp.Body).Decode(&settled)
	if settled.SurvivorID != rick.ID || settled.PartnerID != daryl.ID || len(settled.Items) != 2 {
		t.Errorf("unexpected trade payload: %+v", settled)
	}

	// Trade shows up in history.
	listResp, err := http.Get(fmt.Sprintf("%s/api/trades?survivor_id=%d", server.URL, daryl.ID))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer listResp.Body.Close()
	var trades []model.Trade
	json.NewDecoder(listResp.Body).Decode(&trades)
	if len(trades) != 1 {
		t.Errorf("expected 1 trade in history, got %d", len(trades))
	}
}

func TestTradeEndpointValidationPayload(t *testing.T) {
	server, _, res := setupTestServer(t)

	rick := createSurvivor(t, server.URL, "Rick", []map[string]any{
		{"resource_id": res["Water"], "quantity": 3},
	})
	daryl := createSurvivor(t, server.URL, "Daryl", []map[string]any{
		{"resource_id": res["Ammunition"], "quantity": 10},
	})

	// Value mismatch: 4.00 against 3.00.
	resp := postJSON(t, fmt.Sprintf("%s/api/survivors/%d/trade", server.URL, rick.ID), map[string]any{
		"partner_id":      daryl.ID,
		"offered_items":   []map[string]any{{"resource_id": res["Water"], "quantity": 1}},
		"requested_items": []map[string]any{{"resource_id": res["Ammunition"], "quantity": 3}},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var fields map[string][]string
	json.NewDecoder(resp.Body).Decode(&fields)
	if len(fields["requested_items"]) == 0 {
		t.Errorf("expected requested_items error list, got %v", fields)
	}
}

func TestInfectionReportFlow(t *testing.T) {
	server, database, _ := setupTestServer(t)

	target := createSurvivor(t, server.URL, "Shane", nil)
	var authors []model.Survivor
	for i := 0; i < model.ReportThreshold; i++ {
		authors = append(authors, createSurvivor(t, server.URL, fmt.Sprintf("Witness %d", i), nil))
	}

	for _, a := range authors {
		resp := postJSON(t, fmt.Sprintf("%s/api/survivors/%d/infection-reports", server.URL, target.ID),
			map[string]any{"author_id": a.ID})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	s, err := store.GetSurvivor(context.Background(), database, target.ID)
	if err != nil {
		t.Fatalf("getting survivor: %v", err)
	}
	if !s.IsInfected {
		t.Error("expected survivor flagged after threshold reports")
	}

	// Duplicate report from the first author is a per-field 400.
	resp := postJSON(t, fmt.Sprintf("%s/api/survivors/%d/infection-reports", server.URL, target.ID),
		map[string]any{"author_id": authors[0].ID})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate report, got %d", resp.StatusCode)
	}
}

func TestLocationLogFlow(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rick := createSurvivor(t, server.URL, "Rick", nil)

	resp := postJSON(t, fmt.Sprintf("%s/api/survivors/%d/location-logs", server.URL, rick.ID),
		map[string]any{"latitude": 46.05, "longitude": 14.51})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	listResp, err := http.Get(server.URL + "/api/location-logs")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer listResp.Body.Close()
	var logs []model.LocationLog
	json.NewDecoder(listResp.Body).Decode(&logs)
	if len(logs) != 1 || logs[0].SurvivorID != rick.ID {
		t.Errorf("unexpected location logs: %v", logs)
	}
}

func TestSurvivorNotFound(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/survivors/999")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
