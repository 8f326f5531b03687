package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/db"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	"github.com/sispe-project/sispe/internal/pkg/dberrors"
)

// ObservationRepository handles the append-only observation history
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a new ObservationRepository
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{
		db: db,
	}
}

// Append inserts a new history entry and clears the legacy single-field
// observations column for the student in the same transaction. The legacy
// column stops being a source of truth on the first append.
func (r *ObservationRepository) Append(ctx context.Context, studentID int64, timestamp, note string) (int64, error) {
	var id int64

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO observation_history (student_id, timestamp, note)
			VALUES (?, ?, ?)`,
			studentID, timestamp, note)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error appending observation: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("error reading generated observation id: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE students
			SET observations = ''
			WHERE id = ?`,
			studentID); err != nil {
			return fmt.Errorf("error clearing legacy observations: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// History retrieves a student's entries, newest first
func (r *ObservationRepository) History(ctx context.Context, studentID int64) ([]*models.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_id, timestamp, note
		FROM observation_history
		WHERE student_id = ?
		ORDER BY id DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing observation history: %w", err)
	}
	defer rows.Close()

	var entries []*models.Observation
	for rows.Next() {
		entry := &models.Observation{}
		if err := rows.Scan(&entry.ID, &entry.StudentID, &entry.Timestamp, &entry.Note); err != nil {
			return nil, fmt.Errorf("error scanning observation: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Latest retrieves the most recent entry for a student, or nil if the
// history is empty
func (r *ObservationRepository) Latest(ctx context.Context, studentID int64) (*models.Observation, error) {
	entry := &models.Observation{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, student_id, timestamp, note
		FROM observation_history
		WHERE student_id = ?
		ORDER BY id DESC
		LIMIT 1`,
		studentID).Scan(&entry.ID, &entry.StudentID, &entry.Timestamp, &entry.Note)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting latest observation: %w", err)
	}

	return entry, nil
}
