package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dkovac/refuge/internal/db"
	"github.com/dkovac/refuge/internal/model"
)

func TestCreateLocationLog(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedCatalog(t, database)

	rick := newSurvivor(t, database, "Rick", nil)

	l, err := CreateLocationLog(ctx, database, rick.ID, 46.05, 14.51)
	if err != nil {
		t.Fatalf("CreateLocationLog: %v", err)
	}
	if l.Latitude != 46.05 || l.Longitude != 14.51 {
		t.Errorf("unexpected coordinates: %+v", l)
	}
	if l.SurvivorName != "Rick" {
		t.Errorf("expected survivor name joined, got %q", l.SurvivorName)
	}
}

func TestCreateLocationLogInfected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedCatalog(t, database)

	rick := newSurvivor(t, database, "Rick", nil)
	database.ExecContext(ctx, `UPDATE survivors SET is_infected = 1 WHERE id = ?`, rick.ID)

	_, err := CreateLocationLog(ctx, database, rick.ID, 46.05, 14.51)
	var fe model.FieldErrors
	if !errors.As(err, &fe) || len(fe["survivor_id"]) == 0 {
		t.Fatalf("expected survivor_id error, got %v", err)
	}
}

func TestListLatestLocations(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	seedCatalog(t, database)

	rick := newSurvivor(t, database, "Rick", nil)
	daryl := newSurvivor(t, database, "Daryl", nil)

	CreateLocationLog(ctx, database, rick.ID, 1, 1)
	CreateLocationLog(ctx, database, rick.ID, 2, 2)
	CreateLocationLog(ctx, database, daryl.ID, 3, 3)

	logs, err := ListLatestLocations(ctx, database)
	if err != nil {
		t.Fatalf("ListLatestLocations: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs (one per survivor), got %d", len(logs))
	}

	// Ordered by survivor name: Daryl then Rick; Rick's is his newest.
	if logs[0].SurvivorID != daryl.ID || logs[0].Latitude != 3 {
		t.Errorf("unexpected first log: %+v", logs[0])
	}
	if logs[1].SurvivorID != rick.ID || logs[1].Latitude != 2 {
		t.Errorf("expected rick's latest log, got %+v", logs[1])
	}
}
