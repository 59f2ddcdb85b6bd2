package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// CreateLocationLog records a survivor's position. Infected survivors cannot
// log locations.
func CreateLocationLog(ctx context.Context, db *sql.DB, survivorID int64, latitude, longitude float64) (*model.LocationLog, error) {
	survivor, err := GetSurvivor(ctx, db, survivorID)
	if err != nil {
		return nil, err
	}

	errs := model.FieldErrors{}
	if survivor == nil {
		errs.Add("survivor_id", "Survivor not found.")
	} else if survivor.IsInfected {
		errs.Add("survivor_id", "Infected survivors cannot perform such action.")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO location_logs (survivor_id, latitude, longitude) VALUES (?, ?, ?)`,
		survivorID, latitude, longitude,
	)
	if err != nil {
		return nil, fmt.Errorf("creating location log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting location log id: %w", err)
	}

	return GetLocationLog(ctx, db, id)
}

// GetLocationLog returns a location log by ID.
func GetLocationLog(ctx context.Context, db *sql.DB, id int64) (*model.LocationLog, error) {
	l := &model.LocationLog{}
	err := db.QueryRowContext(ctx,
		`SELECT l.id, l.survivor_id, l.latitude, l.longitude, l.created_at, s.name
		 FROM location_logs l
		 JOIN survivors s ON s.id = l.survivor_id
		 WHERE l.id = ?`, id,
	).Scan(&l.ID, &l.SurvivorID, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.SurvivorName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location log: %w", err)
	}
	return l, nil
}

// ListLatestLocations returns each survivor's most recent location log.
// The latest log is picked by row id rather than timestamp, which only has
// second resolution.
func ListLatestLocations(ctx context.Context, db *sql.DB) ([]model.LocationLog, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.survivor_id, l.latitude, l.longitude, l.created_at, s.name
		 FROM location_logs l
		 JOIN survivors s ON s.id = l.survivor_id
		 WHERE l.id = (SELECT MAX(l2.id) FROM location_logs l2 WHERE l2.survivor_id = l.survivor_id)
		 ORDER BY s.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing latest locations: %w", err)
	}
	defer rows.Close()

	var logs []model.LocationLog
	for rows.Next() {
		var l model.LocationLog
		if err := rows.Scan(&l.ID, &l.SurvivorID, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.SurvivorName); err != nil {
			return nil, fmt.Errorf("scanning location log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
