package auth

import (
	"context"
	"errors"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	"github.com/sispe-project/sispe/internal/pkg/logger"
)

// AuthorizationService gates access-controlled operations on the session
// that is passed in explicitly with every call.
type AuthorizationService struct {
	studentRepo *repositories.StudentRepository
	linkRepo    *repositories.GuardianLinkRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(studentRepo *repositories.StudentRepository, linkRepo *repositories.GuardianLinkRepository) *AuthorizationService {
	return &AuthorizationService{
		studentRepo: studentRepo,
		linkRepo:    linkRepo,
	}
}

// RequireRole validates that the session carries one of the given roles.
// A nil session is never permitted.
func (s *AuthorizationService) RequireRole(session *models.Session, roles ...models.RoleType) error {
	if session == nil || session.Username == "" {
		return apperrors.ErrPermissionDenied
	}

	for _, role := range roles {
		if session.Role == role {
			return nil
		}
	}

	return apperrors.ErrPermissionDenied
}

// ValidateStudentOwnership validates that the session belongs to the
// clinician owning the student and returns the student record.
func (s *AuthorizationService) ValidateStudentOwnership(ctx context.Context, session *models.Session, studentID int64) (*models.Student, error) {
	if err := s.RequireRole(session, models.RoleClinician); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if student.OwnerUsername != session.Username {
		return nil, apperrors.ErrPermissionDenied
	}

	return student, nil
}

// ValidateStudentRead validates read access to a student: the owning
// clinician, a linked guardian, or an administrative session.
func (s *AuthorizationService) ValidateStudentRead(ctx context.Context, session *models.Session, studentID int64) (*models.Student, error) {
	if session == nil || session.Username == "" {
		return nil, apperrors.ErrPermissionDenied
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	switch session.Role {
	case models.RoleAdmin:
		return student, nil

	case models.RoleClinician:
		if student.OwnerUsername == session.Username {
			return student, nil
		}
		return nil, apperrors.ErrPermissionDenied

	case models.RoleGuardian:
		linked, err := s.linkRepo.Exists(ctx, studentID, session.Username)
		if err != nil {
			logger.Error().Err(err).Int64("studentID", studentID).Msg("Error checking guardian link")
			return nil, err
		}
		if !linked {
			return nil, apperrors.ErrPermissionDenied
		}
		return student, nil
	}

	return nil, apperrors.ErrPermissionDenied
}

// IsNotFound reports whether err is one of the lookup-miss errors, to let
// callers translate them without leaking which entity was missing.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrStudentNotFound) ||
		errors.Is(err, apperrors.ErrUserNotFound)
}
