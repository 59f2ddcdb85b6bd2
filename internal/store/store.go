// Package store implements all database access. Functions take either a
// *sql.DB or, where reads must share a transaction with writes, a Querier.
package store

import (
	"context"
	"database/sql"
)

// Querier is the read surface shared by *sql.DB and *sql.Tx. Snapshot
// loaders take it so trade settlement can read participants, prices, and
// inventories through the settlement transaction itself.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
