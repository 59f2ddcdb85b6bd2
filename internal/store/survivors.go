package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// CreateSurvivor creates a survivor together with its initial inventory in a
// single transaction. Initial items are validated up front so a bad entry
// never leaves a half-created survivor behind.
func CreateSurvivor(ctx context.Context, db *sql.DB, name string, age int, genderID *int64, items []model.InventoryItem) (*model.Survivor, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if genderID != nil {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM genders WHERE id = ?`, *genderID).Scan(&exists)
		if err == sql.ErrNoRows {
			errs := model.FieldErrors{}
			errs.Add("gender_id", fmt.Sprintf("Unknown gender %d.", *genderID))
			return nil, errs
		}
		if err != nil {
			return nil, fmt.Errorf("checking gender: %w", err)
		}
	}

	errs := model.FieldErrors{}
	seen := map[int64]bool{}
	for _, item := range items {
		if item.Quantity <= 0 {
			errs.Add("inventory_items", fmt.Sprintf("Quantity for resource %d must be positive.", item.ResourceID))
		}
		if seen[item.ResourceID] {
			errs.Add("inventory_items", fmt.Sprintf("Resource %d is listed more than once.", item.ResourceID))
		}
		seen[item.ResourceID] = true

		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM resources WHERE id = ?`, item.ResourceID).Scan(&exists)
		if err == sql.ErrNoRows {
			errs.Add("inventory_items", fmt.Sprintf("Unknown resource %d.", item.ResourceID))
		} else if err != nil {
			return nil, fmt.Errorf("checking resource: %w", err)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO survivors (name, age, gender_id) VALUES (?, ?, ?)`,
		name, age, genderID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating survivor: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting survivor id: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_items (survivor_id, resource_id, quantity) VALUES (?, ?, ?)`,
			id, item.ResourceID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("creating initial inventory: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing survivor creation: %w", err)
	}

	return GetSurvivor(ctx, db, id)
}

// GetSurvivor returns a survivor by ID with its gender name joined.
func GetSurvivor(ctx context.Context, q Querier, id int64) (*model.Survivor, error) {
	s := &model.Survivor{}
	var genderName sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT s.id, s.name, s.age, s.gender_id, s.is_infected, s.created_at, g.name
		 FROM survivors s
		 LEFT JOIN genders g ON g.id = s.gender_id
		 WHERE s.id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.Age, &s.GenderID, &s.IsInfected, &s.CreatedAt, &genderName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting survivor: %w", err)
	}
	s.GenderName = genderName.String
	return s, nil
}

// ListSurvivors returns all survivors with gender names joined.
func ListSurvivors(ctx context.Context, db *sql.DB) ([]model.Survivor, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT s.id, s.name, s.age, s.gender_id, s.is_infected, s.created_at, g.name
		 FROM survivors s
		 LEFT JOIN genders g ON g.id = s.gender_id
		 ORDER BY s.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing survivors: %w", err)
	}
	defer rows.Close()

	var survivors []model.Survivor
	for rows.Next() {
		var s model.Survivor
		var genderName sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Age, &s.GenderID, &s.IsInfected, &s.CreatedAt, &genderName); err != nil {
			return nil, fmt.Errorf("scanning survivor: %w", err)
		}
		s.GenderName = genderName.String
		survivors = append(survivors, s)
	}
	return survivors, rows.Err()
}
