package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Inventory rows carry the two core
// invariants in the table definition itself: one row per (survivor, resource)
// and strictly positive quantities.
const schema = `
CREATE TABLE IF NOT EXISTS genders (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS survivors (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    age         INTEGER NOT NULL CHECK (age >= 0),
    gender_id   INTEGER REFERENCES genders(id),
    is_infected INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS resources (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    price_cents INTEGER NOT NULL DEFAULT 0 CHECK (price_cents >= 0),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory_items (
    survivor_id INTEGER NOT NULL REFERENCES survivors(id),
    resource_id INTEGER NOT NULL REFERENCES resources(id),
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    PRIMARY KEY (survivor_id, resource_id)
);

CREATE TABLE IF NOT EXISTS location_logs (
    id          INTEGER PRIMARY KEY,
    survivor_id INTEGER NOT NULL REFERENCES survivors(id),
    latitude    REAL NOT NULL,
    longitude   REAL NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS infection_reports (
    id          INTEGER PRIMARY KEY,
    author_id   INTEGER NOT NULL REFERENCES survivors(id),
    infected_id INTEGER NOT NULL REFERENCES survivors(id),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (author_id, infected_id)
);

CREATE TABLE IF NOT EXISTS trades (
    id          INTEGER PRIMARY KEY,
    survivor_id INTEGER NOT NULL REFERENCES survivors(id),
    partner_id  INTEGER NOT NULL REFERENCES survivors(id),
    traded_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS trade_items (
    trade_id    INTEGER NOT NULL REFERENCES trades(id),
    resource_id INTEGER NOT NULL REFERENCES resources(id),
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    direction   TEXT NOT NULL CHECK (direction IN ('offered', 'requested'))
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
