package store

import (
	"context"
	"testing"

	"github.com/dkovac/refuge/internal/db"
	"github.com/dkovac/refuge/internal/model"
)

func TestCreateAndListResources(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	water, err := CreateResource(ctx, database, "Water", 400)
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	if water.Price != 400 {
		t.Errorf("expected price 400 cents, got %d", water.Price)
	}

	CreateResource(ctx, database, "Ammunition", 100)

	resources, err := ListResources(ctx, database)
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
	// Ordered by name.
	if resources[0].Name != "Ammunition" || resources[1].Name != "Water" {
		t.Errorf("unexpected order: %v", resources)
	}
}

func TestCreateResourceDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateResource(ctx, database, "Water", 400)
	if _, err := CreateResource(ctx, database, "Water", 500); err == nil {
		t.Error("expected error for duplicate resource name")
	}
}

func TestGetPricesSnapshot(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	water, _ := CreateResource(ctx, database, "Water", 400)
	food, _ := CreateResource(ctx, database, "Food", 300)

	prices, err := GetPrices(ctx, database)
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 prices, got %d", len(prices))
	}
	if prices[water.ID] != 400 || prices[food.ID] != 300 {
		t.Errorf("unexpected prices: %v", prices)
	}
}

func TestSeedCatalogs(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := SeedCatalogs(ctx, database); err != nil {
		t.Fatalf("SeedCatalogs: %v", err)
	}
	// Idempotent on a seeded database.
	if err := SeedCatalogs(ctx, database); err != nil {
		t.Fatalf("SeedCatalogs (second run): %v", err)
	}

	genders, _ := ListGenders(ctx, database)
	if len(genders) != 3 {
		t.Errorf("expected 3 genders, got %d", len(genders))
	}

	resources, _ := ListResources(ctx, database)
	if len(resources) != 4 {
		t.Fatalf("expected 4 resources, got %d", len(resources))
	}
	byName := map[string]model.Price{}
	for _, r := range resources {
		byName[r.Name] = r.Price
	}
	if byName["Water"] != 400 || byName["Ammunition"] != 100 {
		t.Errorf("unexpected seeded prices: %v", byName)
	}
}
