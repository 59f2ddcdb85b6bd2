package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
	"github.com/dkovac/refuge/internal/trade"
)

// ErrSettlementFailed marks storage-level failures during trade settlement.
// The transaction was rolled back, so nothing changed and the caller may
// retry from scratch.
var ErrSettlementFailed = errors.New("trade settlement failed")

// ExecuteTrade validates and settles a barter proposal as one atomic unit.
// The participant, price, and stock snapshot is read inside the settlement
// transaction, after the write lock is taken, so the quantities the
// validator checks are the quantities the mutations are applied to. On
// validation failure it returns model.FieldErrors and nothing changes; on a
// storage failure it returns ErrSettlementFailed and nothing changes.
func ExecuteTrade(ctx context.Context, db *sql.DB, p trade.Proposal) (*model.Trade, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning transaction: %v", ErrSettlementFailed, err)
	}
	defer tx.Rollback()

	// Take the write lock before reading stock so no concurrent trade can
	// interleave between the check and the mutations.
	if _, err := tx.ExecContext(ctx,
		`UPDATE survivors SET is_infected = is_infected WHERE id IN (?, ?)`,
		p.SurvivorID, p.PartnerID,
	); err != nil {
		return nil, fmt.Errorf("%w: locking participants: %v", ErrSettlementFailed, err)
	}

	snap, err := loadTradeSnapshot(ctx, tx, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	validated, err := trade.Validate(p, snap)
	if err != nil {
		return nil, err
	}

	m := trade.Plan(validated)
	if err := applyMutations(ctx, tx, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	tradeID, err := recordTrade(ctx, tx, validated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing: %v", ErrSettlementFailed, err)
	}

	return GetTrade(ctx, db, tradeID)
}

// loadTradeSnapshot reads everything validation needs through the settlement
// transaction: both participants, the price catalog, and both inventories.
func loadTradeSnapshot(ctx context.Context, tx *sql.Tx, p trade.Proposal) (trade.Snapshot, error) {
	var snap trade.Snapshot
	var err error

	if snap.Survivor, err = GetSurvivor(ctx, tx, p.SurvivorID); err != nil {
		return snap, err
	}
	if snap.Partner, err = GetSurvivor(ctx, tx, p.PartnerID); err != nil {
		return snap, err
	}
	if snap.Prices, err = GetPrices(ctx, tx); err != nil {
		return snap, err
	}
	if snap.SurvivorItems, err = GetSurvivorItems(ctx, tx, p.SurvivorID); err != nil {
		return snap, err
	}
	if snap.PartnerItems, err = GetSurvivorItems(ctx, tx, p.PartnerID); err != nil {
		return snap, err
	}
	return snap, nil
}

// applyMutations applies the merged mutation batch. Keys are disjoint, so
// the order of the three passes does not matter inside the transaction.
func applyMutations(ctx context.Context, tx *sql.Tx, m trade.Mutations) error {
	for _, k := range m.Deletes {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM inventory_items WHERE survivor_id = ? AND resource_id = ?`,
			k.SurvivorID, k.ResourceID,
		)
		if err != nil {
			return fmt.Errorf("deleting inventory row: %w", err)
		}
	}
	for _, c := range m.Creates {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_items (survivor_id, resource_id, quantity) VALUES (?, ?, ?)`,
			c.SurvivorID, c.ResourceID, c.Quantity,
		)
		if err != nil {
			return fmt.Errorf("creating inventory row: %w", err)
		}
	}
	for _, u := range m.Updates {
		_, err := tx.ExecContext(ctx,
			`UPDATE inventory_items SET quantity = ? WHERE survivor_id = ? AND resource_id = ?`,
			u.Quantity, u.SurvivorID, u.ResourceID,
		)
		if err != nil {
			return fmt.Errorf("updating inventory row: %w", err)
		}
	}
	return nil
}

// recordTrade writes the settled trade and its item movements.
func recordTrade(ctx context.Context, tx *sql.Tx, v *trade.Validated) (int64, error) {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO trades (survivor_id, partner_id) VALUES (?, ?)`,
		v.SurvivorID, v.PartnerID,
	)
	if err != nil {
		return 0, fmt.Errorf("recording trade: %w", err)
	}
	tradeID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting trade id: %w", err)
	}

	record := func(b trade.Basket, direction string) error {
		for _, e := range b {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO trade_items (trade_id, resource_id, quantity, direction) VALUES (?, ?, ?, ?)`,
				tradeID, e.ResourceID, e.Quantity, direction,
			)
			if err != nil {
				return fmt.Errorf("recording trade item: %w", err)
			}
		}
		return nil
	}
	if err := record(v.Offered, model.TradeDirectionOffered); err != nil {
		return 0, err
	}
	if err := record(v.Requested, model.TradeDirectionRequested); err != nil {
		return 0, err
	}

	return tradeID, nil
}

// GetTrade returns a settled trade with its items and participant names.
func GetTrade(ctx context.Context, db *sql.DB, id int64) (*model.Trade, error) {
	t := &model.Trade{}
	err := db.QueryRowContext(ctx,
		`SELECT t.id, t.survivor_id, t.partner_id, t.traded_at, s.name, p.name
		 FROM trades t
		 JOIN survivors s ON s.id = t.survivor_id
		 JOIN survivors p ON p.id = t.partner_id
		 WHERE t.id = ?`, id,
	).Scan(&t.ID, &t.SurvivorID, &t.PartnerID, &t.TradedAt, &t.SurvivorName, &t.PartnerName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting trade: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT ti.trade_id, ti.resource_id, ti.quantity, ti.direction, r.name
		 FROM trade_items ti
		 JOIN resources r ON r.id = ti.resource_id
		 WHERE ti.trade_id = ?
		 ORDER BY ti.direction, r.name`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting trade items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.TradeItem
		if err := rows.Scan(&item.TradeID, &item.ResourceID, &item.Quantity, &item.Direction, &item.ResourceName); err != nil {
			return nil, fmt.Errorf("scanning trade item: %w", err)
		}
		t.Items = append(t.Items, item)
	}
	return t, rows.Err()
}

// ListTrades returns settled trades, optionally filtered to one survivor's
// trades (as either side), newest first.
func ListTrades(ctx context.Context, db *sql.DB, survivorID int64) ([]model.Trade, error) {
	query := `SELECT t.id, t.survivor_id, t.partner_id, t.traded_at, s.name, p.name
	          FROM trades t
	          JOIN survivors s ON s.id = t.survivor_id
	          JOIN survivors p ON p.id = t.partner_id`
	var args []any

	if survivorID > 0 {
		query += ` WHERE t.survivor_id = ? OR t.partner_id = ?`
		args = append(args, survivorID, survivorID)
	}

	query += ` ORDER BY t.traded_at DESC, t.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}
	defer rows.Close()

	var trades []model.Trade
	for rows.Next() {
		var t model.Trade
		if err := rows.Scan(&t.ID, &t.SurvivorID, &t.PartnerID, &t.TradedAt, &t.SurvivorName, &t.PartnerName); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
