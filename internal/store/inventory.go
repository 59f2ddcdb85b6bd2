package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// GetSurvivorInventory returns a survivor's inventory with resource names
// and catalog prices joined.
func GetSurvivorInventory(ctx context.Context, db *sql.DB, survivorID int64) ([]model.InventoryItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT inv.survivor_id, inv.resource_id, inv.quantity, r.name, r.price_cents
		 FROM inventory_items inv
		 JOIN resources r ON r.id = inv.resource_id
		 WHERE inv.survivor_id = ?
		 ORDER BY r.name`, survivorID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting survivor inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.SurvivorID, &item.ResourceID, &item.Quantity, &item.ResourceName, &item.ResourcePrice); err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetSurvivorItems returns a survivor's current stock keyed by resource id.
// Querier lets trade settlement read stock through its own transaction.
func GetSurvivorItems(ctx context.Context, q Querier, survivorID int64) (map[int64]int, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT resource_id, quantity FROM inventory_items WHERE survivor_id = ?`,
		survivorID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting survivor items: %w", err)
	}
	defer rows.Close()

	items := map[int64]int{}
	for rows.Next() {
		var resourceID int64
		var quantity int
		if err := rows.Scan(&resourceID, &quantity); err != nil {
			return nil, fmt.Errorf("scanning survivor item: %w", err)
		}
		items[resourceID] = quantity
	}
	return items, rows.Err()
}

// AddStock adds quantity of a resource to a survivor's inventory, creating
// the row if needed.
func AddStock(ctx context.Context, db *sql.DB, survivorID, resourceID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO inventory_items (survivor_id, resource_id, quantity) VALUES (?, ?, ?)
		 ON CONFLICT (survivor_id, resource_id) DO UPDATE SET quantity = quantity + ?`,
		survivorID, resourceID, quantity, quantity,
	)
	if err != nil {
		return fmt.Errorf("adding stock: %w", err)
	}
	return nil
}
