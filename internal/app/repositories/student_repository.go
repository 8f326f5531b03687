package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	"github.com/sispe-project/sispe/internal/pkg/dberrors"
	"github.com/sispe-project/sispe/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// selectStudents builds the common student projection
func selectStudents() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.id", "s.name", "s.room", "s.grade", "s.severity", "s.observations", "s.owner_username",
	).From("students s")
}

// scanStudent scans one row into a Student value copy
func scanStudent(row squirrel.RowScanner) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.Name, &student.Room, &student.Grade,
		&student.Severity, &student.Observations, &student.OwnerUsername,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return student, nil
}

// Create inserts a new student and fills in the generated id. The legacy
// observations column starts out as the value carried by the model, so a
// record imported from an old deployment keeps its single-field text.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO students (name, room, grade, severity, observations, owner_username)
		VALUES (?, ?, ?, ?, ?, ?)`,
		student.Name, student.Room, student.Grade, student.Severity, student.Observations, student.OwnerUsername)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading generated student id: %w", err)
	}

	student.ID = id
	return nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := selectStudents().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student query")
		return nil, err
	}

	return scanStudent(r.db.QueryRowContext(ctx, query, args...))
}

// GetByOwner retrieves all students owned by the given clinician
func (r *StudentRepository) GetByOwner(ctx context.Context, ownerUsername string) ([]*models.Student, error) {
	query, args, err := selectStudents().
		Where(squirrel.Eq{"s.owner_username": ownerUsername}).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building students-by-owner query")
		return nil, err
	}

	return r.queryStudents(ctx, query, args...)
}

// GetByGuardian retrieves all students linked to the given guardian
func (r *StudentRepository) GetByGuardian(ctx context.Context, guardianUsername string) ([]*models.Student, error) {
	query, args, err := selectStudents().
		Join("guardian_links gl ON gl.student_id = s.id").
		Where(squirrel.Eq{"gl.guardian_username": guardianUsername}).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building students-by-guardian query")
		return nil, err
	}

	return r.queryStudents(ctx, query, args...)
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID, &student.Name, &student.Room, &student.Grade,
			&student.Severity, &student.Observations, &student.OwnerUsername,
		); err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// Update overwrites the mutable fields of a student. The observation
// history and the legacy observations column are not touched.
func (r *StudentRepository) Update(ctx context.Context, id int64, name string, room, grade int, severity models.Severity) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE students
		SET name = ?, room = ?, grade = ?, severity = ?
		WHERE id = ?`,
		name, room, grade, severity, id)

	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Guardian links and history entries cascade;
// the caller is responsible for removing any exported report artifact.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM students
		WHERE id = ?`,
		id)

	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
