package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// CreateResource creates a new catalog resource.
func CreateResource(ctx context.Context, db *sql.DB, name string, price model.Price) (*model.Resource, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO resources (name, price_cents) VALUES (?, ?)`,
		name, int64(price),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting resource id: %w", err)
	}

	return GetResource(ctx, db, id)
}

// GetResource returns a resource by ID.
func GetResource(ctx context.Context, db *sql.DB, id int64) (*model.Resource, error) {
	r := &model.Resource{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, price_cents, created_at FROM resources WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Price, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	return r, nil
}

// ListResources returns the full resource catalog.
func ListResources(ctx context.Context, db *sql.DB) ([]model.Resource, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, price_cents, created_at FROM resources ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		var r model.Resource
		if err := rows.Scan(&r.ID, &r.Name, &r.Price, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// GetPrices returns a consistent snapshot of the full price catalog, keyed by
// resource id. Querier lets trade settlement read the snapshot through its
// own transaction.
func GetPrices(ctx context.Context, q Querier) (map[int64]model.Price, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, price_cents FROM resources`)
	if err != nil {
		return nil, fmt.Errorf("getting prices: %w", err)
	}
	defer rows.Close()

	prices := map[int64]model.Price{}
	for rows.Next() {
		var id int64
		var price model.Price
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}
		prices[id] = price
	}
	return prices, rows.Err()
}
