package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	"github.com/sispe-project/sispe/internal/pkg/dberrors"
)

// GuardianLinkRepository handles guardian-student association operations
type GuardianLinkRepository struct {
	db *sql.DB
}

// NewGuardianLinkRepository creates a new GuardianLinkRepository
func NewGuardianLinkRepository(db *sql.DB) *GuardianLinkRepository {
	return &GuardianLinkRepository{
		db: db,
	}
}

// Link associates a guardian with a student. A duplicate pair is an error,
// not a silent no-op.
func (r *GuardianLinkRepository) Link(ctx context.Context, studentID int64, guardianUsername string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO guardian_links (student_id, guardian_username)
		VALUES (?, ?)`,
		studentID, guardianUsername)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "guardian_links") {
			return apperrors.ErrDuplicateLink
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("error creating guardian link: %w", err)
	}

	return nil
}

// Unlink removes a guardian-student association
func (r *GuardianLinkRepository) Unlink(ctx context.Context, studentID int64, guardianUsername string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM guardian_links
		WHERE student_id = ? AND guardian_username = ?`,
		studentID, guardianUsername)

	if err != nil {
		return fmt.Errorf("error removing guardian link: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking unlink result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLinkNotFound
	}

	return nil
}

// Exists checks if a guardian-student pair is already linked
func (r *GuardianLinkRepository) Exists(ctx context.Context, studentID int64, guardianUsername string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM guardian_links WHERE student_id = ? AND guardian_username = ?)`,
		studentID, guardianUsername).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking guardian link: %w", err)
	}

	return exists, nil
}

// ListGuardians retrieves the guardian usernames linked to one student
func (r *GuardianLinkRepository) ListGuardians(ctx context.Context, studentID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT guardian_username
		FROM guardian_links
		WHERE student_id = ?
		ORDER BY guardian_username`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing guardian links: %w", err)
	}
	defer rows.Close()

	var guardians []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("error scanning guardian link: %w", err)
		}
		guardians = append(guardians, username)
	}

	return guardians, rows.Err()
}
