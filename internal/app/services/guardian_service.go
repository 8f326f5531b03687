package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/sispe-project/sispe/internal/app/auth"
	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

// GuardianService handles the links between guardian accounts and students
type GuardianService struct {
	linkRepo    *repositories.GuardianLinkRepository
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	authz       *appauth.AuthorizationService
	logger      zerolog.Logger
}

// NewGuardianService creates a new GuardianService
func NewGuardianService(
	linkRepo *repositories.GuardianLinkRepository,
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) *GuardianService {
	return &GuardianService{
		linkRepo:    linkRepo,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		authz:       authz,
		logger:      logger,
	}
}

// LinkGuardian attaches a guardian account to a student. Administrative
// only. The account must exist and carry the guardian role; a repeated
// pair is rejected.
func (s *GuardianService) LinkGuardian(ctx context.Context, session *models.Session, studentID int64, guardianUsername string) error {
	if err := s.authz.RequireRole(session, models.RoleAdmin); err != nil {
		return err
	}

	guardian, err := s.userRepo.GetByUsername(ctx, guardianUsername)
	if err != nil {
		return err
	}
	if guardian.Role != models.RoleGuardian {
		return apperrors.NewInvalidArgumentError("account is not a guardian")
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}

	if err := s.linkRepo.Link(ctx, studentID, guardianUsername); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Str("guardian", guardianUsername).Msg("Guardian linked")
	return nil
}

// UnlinkGuardian detaches a guardian account from a student.
// Administrative only.
func (s *GuardianService) UnlinkGuardian(ctx context.Context, session *models.Session, studentID int64, guardianUsername string) error {
	if err := s.authz.RequireRole(session, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.linkRepo.Unlink(ctx, studentID, guardianUsername); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Str("guardian", guardianUsername).Msg("Guardian unlinked")
	return nil
}

// ListGuardians lists the guardian usernames linked to a readable student
func (s *GuardianService) ListGuardians(ctx context.Context, session *models.Session, studentID int64) ([]string, error) {
	if _, err := s.authz.ValidateStudentRead(ctx, session, studentID); err != nil {
		return nil, err
	}

	return s.linkRepo.ListGuardians(ctx, studentID)
}
