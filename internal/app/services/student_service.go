package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	appauth "github.com/sispe-project/sispe/internal/app/auth"
	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	"github.com/sispe-project/sispe/internal/pkg/report"
)

// StudentService handles student registration and the clinician's record
// maintenance commands
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	authz       *appauth.AuthorizationService
	reports     *ReportService
	exporter    *report.Exporter
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	authz *appauth.AuthorizationService,
	reports *ReportService,
	exporter *report.Exporter,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		authz:       authz,
		reports:     reports,
		exporter:    exporter,
		logger:      logger,
	}
}

// validateStudentFields validates the mutable fields shared by registration
// and update
func validateStudentFields(name string, room, grade int, severity models.Severity) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewInvalidArgumentError("student name cannot be empty")
	}
	if room <= 0 {
		return apperrors.NewInvalidArgumentError("room must be a positive number")
	}
	if grade <= 0 {
		return apperrors.NewInvalidArgumentError("grade must be a positive number")
	}
	if !models.ValidSeverity(severity) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidSeverity, severity)
	}
	return nil
}

// RegisterStudent creates a student owned by the calling clinician and
// writes the initial report artifact.
func (s *StudentService) RegisterStudent(ctx context.Context, session *models.Session, name string, room, grade int, severity models.Severity, observations string) (*models.Student, error) {
	if err := s.authz.RequireRole(session, models.RoleClinician); err != nil {
		return nil, err
	}

	if err := validateStudentFields(name, room, grade, severity); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:          strings.TrimSpace(name),
		Room:          room,
		Grade:         grade,
		Severity:      severity,
		Observations:  observations,
		OwnerUsername: session.Username,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	if _, err := s.reports.regenerate(ctx, student); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", student.ID).Msg("Failed to write initial report")
	}

	s.logger.Info().Int64("studentID", student.ID).Str("owner", session.Username).Msg("Student registered")
	return student, nil
}

// UpdateStudent rewrites a student's mutable fields. Only the owning
// clinician may update. A rename drops the artifact carrying the old name
// before the report is regenerated, so stale files never accumulate.
func (s *StudentService) UpdateStudent(ctx context.Context, session *models.Session, studentID int64, name string, room, grade int, severity models.Severity) (*models.Student, error) {
	student, err := s.authz.ValidateStudentOwnership(ctx, session, studentID)
	if err != nil {
		return nil, err
	}

	if err := validateStudentFields(name, room, grade, severity); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	oldName := student.Name

	if err := s.studentRepo.Update(ctx, studentID, name, room, grade, severity); err != nil {
		return nil, err
	}

	if name != oldName {
		if err := s.exporter.Remove(studentID, oldName); err != nil {
			s.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to remove stale report artifact")
		}
	}

	student.Name = name
	student.Room = room
	student.Grade = grade
	student.Severity = severity

	if _, err := s.reports.regenerate(ctx, student); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to regenerate report after update")
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Student updated")
	return student, nil
}

// DeleteStudent removes a student owned by the calling clinician along
// with the report artifact. History and guardian links cascade in the
// store.
func (s *StudentService) DeleteStudent(ctx context.Context, session *models.Session, studentID int64) error {
	student, err := s.authz.ValidateStudentOwnership(ctx, session, studentID)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return err
	}

	if err := s.exporter.Remove(student.ID, student.Name); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to remove report artifact")
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Student deleted")
	return nil
}

// ListStudents lists the students visible to the session: the clinician's
// own case load, or the students linked to the guardian.
func (s *StudentService) ListStudents(ctx context.Context, session *models.Session) ([]*models.Student, error) {
	if session == nil || session.Username == "" {
		return nil, apperrors.ErrPermissionDenied
	}

	switch session.Role {
	case models.RoleClinician:
		return s.studentRepo.GetByOwner(ctx, session.Username)
	case models.RoleGuardian:
		return s.studentRepo.GetByGuardian(ctx, session.Username)
	}

	return nil, apperrors.ErrPermissionDenied
}

// ListStudentsByOwner lists a clinician's case load for an administrative
// session, so guardian links can be set up against it. The named account
// must exist and carry the clinician role.
func (s *StudentService) ListStudentsByOwner(ctx context.Context, session *models.Session, ownerUsername string) ([]*models.Student, error) {
	if err := s.authz.RequireRole(session, models.RoleAdmin); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	if owner.Role != models.RoleClinician {
		return nil, apperrors.NewInvalidArgumentError("account is not a clinician")
	}

	return s.studentRepo.GetByOwner(ctx, ownerUsername)
}

// GetStudent retrieves a single student the session may read
func (s *StudentService) GetStudent(ctx context.Context, session *models.Session, studentID int64) (*models.Student, error) {
	return s.authz.ValidateStudentRead(ctx, session, studentID)
}
