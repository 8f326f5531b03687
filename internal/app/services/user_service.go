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
	pkgauth "github.com/sispe-project/sispe/internal/pkg/auth"
	"github.com/sispe-project/sispe/internal/pkg/report"
)

// UserService handles account management commands
type UserService struct {
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	authz       *appauth.AuthorizationService
	exporter    *report.Exporter
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	authz *appauth.AuthorizationService,
	exporter *report.Exporter,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		authz:       authz,
		exporter:    exporter,
		logger:      logger,
	}
}

// validateNewUser validates account fields before creation
func validateNewUser(username, password string, role models.RoleType) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewInvalidArgumentError("username cannot be empty")
	}
	if password == "" {
		return apperrors.NewInvalidArgumentError("password cannot be empty")
	}
	if len(username) > models.MaxCredentialLength {
		return fmt.Errorf("%w: username exceeds %d characters", apperrors.ErrFieldTooLong, models.MaxCredentialLength)
	}
	if len(password) > models.MaxCredentialLength {
		return fmt.Errorf("%w: password exceeds %d characters", apperrors.ErrFieldTooLong, models.MaxCredentialLength)
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownRole, role)
	}
	return nil
}

// CreateUser creates an account with the given role. Administrative only.
func (s *UserService) CreateUser(ctx context.Context, session *models.Session, username, password string, role models.RoleType) (*models.User, error) {
	if err := s.authz.RequireRole(session, models.RoleAdmin); err != nil {
		return nil, err
	}

	if err := validateNewUser(username, password, role); err != nil {
		return nil, err
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("User created")
	return user, nil
}

// DeleteUser removes an account. Permitted for an administrative session,
// or for any session deleting its own account. The deletion cascades to
// owned students and guardian links; report artifacts of cascaded students
// are removed here since the store does not know about them.
func (s *UserService) DeleteUser(ctx context.Context, session *models.Session, username string) error {
	if session == nil || session.Username == "" {
		return apperrors.ErrPermissionDenied
	}
	if session.Role != models.RoleAdmin && session.Username != username {
		return apperrors.ErrPermissionDenied
	}

	students, err := s.studentRepo.GetByOwner(ctx, username)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		return err
	}

	for _, student := range students {
		if err := s.exporter.Remove(student.ID, student.Name); err != nil {
			s.logger.Warn().Err(err).Int64("studentID", student.ID).Msg("Failed to remove report artifact of cascaded student")
		}
	}

	s.logger.Info().Str("username", username).Msg("User deleted")
	return nil
}

// ListUsersByRole lists accounts with the given role. Administrative only;
// used to pick guardians and clinicians when building links.
func (s *UserService) ListUsersByRole(ctx context.Context, session *models.Session, role models.RoleType) ([]*models.User, error) {
	if err := s.authz.RequireRole(session, models.RoleAdmin); err != nil {
		return nil, err
	}

	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRole, role)
	}

	return s.userRepo.ListByRole(ctx, role)
}
