package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// CreateInfectionReport records one survivor reporting another as infected.
// The report, the duplicate check, and the threshold rule (the reported
// survivor is flagged at model.ReportThreshold distinct reports) run in one
// transaction.
func CreateInfectionReport(ctx context.Context, db *sql.DB, authorID, infectedID int64) (*model.InfectionReport, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	author, err := GetSurvivor(ctx, tx, authorID)
	if err != nil {
		return nil, err
	}
	reported, err := GetSurvivor(ctx, tx, infectedID)
	if err != nil {
		return nil, err
	}

	errs := model.FieldErrors{}
	if author == nil {
		errs.Add("author_id", "Survivor not found.")
	} else if author.IsInfected {
		errs.Add("author_id", "Infected survivors cannot perform such action.")
	}
	if reported == nil {
		errs.Add("infected_id", "Survivor not found.")
	}
	if len(errs) == 0 {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM infection_reports WHERE author_id = ? AND infected_id = ?`,
			authorID, infectedID,
		).Scan(&exists)
		if err == nil {
			errs.Add("author_id", "You cannot report same survivor twice!")
		} else if err != sql.ErrNoRows {
			return nil, fmt.Errorf("checking existing report: %w", err)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO infection_reports (author_id, infected_id) VALUES (?, ?)`,
		authorID, infectedID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating infection report: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting report id: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM infection_reports WHERE infected_id = ?`, infectedID,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("counting reports: %w", err)
	}
	if count >= model.ReportThreshold {
		_, err = tx.ExecContext(ctx,
			`UPDATE survivors SET is_infected = 1 WHERE id = ?`, infectedID,
		)
		if err != nil {
			return nil, fmt.Errorf("flagging survivor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing infection report: %w", err)
	}

	report := &model.InfectionReport{ID: id, AuthorID: authorID, InfectedID: infectedID}
	return report, nil
}
