package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// ListGenders returns the gender catalog.
func ListGenders(ctx context.Context, db *sql.DB) ([]model.Gender, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM genders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing genders: %w", err)
	}
	defer rows.Close()

	var genders []model.Gender
	for rows.Next() {
		var g model.Gender
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning gender: %w", err)
		}
		genders = append(genders, g)
	}
	return genders, rows.Err()
}

// CreateGender adds a gender catalog entry.
func CreateGender(ctx context.Context, db *sql.DB, name string) (*model.Gender, error) {
	result, err := db.ExecContext(ctx, `INSERT INTO genders (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("creating gender: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting gender id: %w", err)
	}
	return &model.Gender{ID: id, Name: name}, nil
}
