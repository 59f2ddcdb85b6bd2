package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// Default catalogs inserted on first run. Resources carry the standard
// barter prices; both catalogs can be extended through the API afterwards.
var (
	defaultGenders = []string{"Female", "Male", "Other"}

	defaultResources = []struct {
		Name  string
		Price model.Price
	}{
		{"Water", 400},
		{"Food", 300},
		{"Medication", 200},
		{"Ammunition", 100},
	}
)

// SeedCatalogs inserts the default genders and resources if the catalogs are
// empty. Safe to call on every startup.
func SeedCatalogs(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genders`).Scan(&count); err != nil {
		return fmt.Errorf("counting genders: %w", err)
	}
	if count == 0 {
		for _, name := range defaultGenders {
			if _, err := CreateGender(ctx, db, name); err != nil {
				return err
			}
		}
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count); err != nil {
		return fmt.Errorf("counting resources: %w", err)
	}
	if count == 0 {
		for _, r := range defaultResources {
			if _, err := CreateResource(ctx, db, r.Name, r.Price); err != nil {
				return err
			}
		}
	}

	return nil
}
