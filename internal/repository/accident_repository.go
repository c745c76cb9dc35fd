package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/accident-hotspots-go/internal/database"
	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// AccidentRepository handles database operations for accidents
type AccidentRepository struct {
	db *sql.DB
}

// NewAccidentRepository creates a new accident repository
func NewAccidentRepository(db *sql.DB) *AccidentRepository {
	return &AccidentRepository{db: db}
}

// InsertAccidents stores accidents in a single transaction and returns the
// number of rows written. Ids are assigned by the database.
func (r *AccidentRepository) InsertAccidents(accidents []models.Accident) (int, error) {
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		return insertAccidents(tx, accidents)
	})
	if err != nil {
		return 0, err
	}
	return len(accidents), nil
}

func insertAccidents(tx *sql.Tx, accidents []models.Accident) error {
	stmt, err := tx.Prepare(`INSERT INTO accidents
		(latitude, longitude, occurred_at, period, category, cause,
		 fatalities, serious_injuries, minor_injuries, damage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range accidents {
		a := &accidents[i]
		_, err := stmt.Exec(a.Lat, a.Lon, a.OccurredAt.Format(time.RFC3339), string(a.Period),
			a.Category, a.Cause, a.Fatalities, a.SeriousInjuries, a.MinorInjuries, a.Damage)
		if err != nil {
			return fmt.Errorf("failed to insert accident %d: %w", i, err)
		}
	}
	return nil
}

// GetAll retrieves every accident ordered by id
func (r *AccidentRepository) GetAll() ([]models.Accident, error) {
	rows, err := r.db.Query(`SELECT id, latitude, longitude, occurred_at, period, category, cause,
		fatalities, serious_injuries, minor_injuries, damage
		FROM accidents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accidents: %w", err)
	}
	defer rows.Close()

	var accidents []models.Accident
	for rows.Next() {
		var a models.Accident
		var occurredAt, period string
		err := rows.Scan(&a.ID, &a.Lat, &a.Lon, &occurredAt, &period, &a.Category, &a.Cause,
			&a.Fatalities, &a.SeriousInjuries, &a.MinorInjuries, &a.Damage)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accident: %w", err)
		}

		a.OccurredAt, err = time.Parse(time.RFC3339, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("invalid occurred_at for accident %d: %w", a.ID, err)
		}
		a.Period = models.Period(period)
		accidents = append(accidents, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accidents: %w", err)
	}

	return accidents, nil
}

// Count returns the number of stored accidents
func (r *AccidentRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM accidents").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accidents: %w", err)
	}
	return count, nil
}

// ReplaceAll swaps the stored accidents for a new set in one transaction
func (r *AccidentRepository) ReplaceAll(accidents []models.Accident) (int, error) {
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM accidents"); err != nil {
			return fmt.Errorf("failed to delete accidents: %w", err)
		}
		return insertAccidents(tx, accidents)
	})
	if err != nil {
		return 0, err
	}
	return len(accidents), nil
}
