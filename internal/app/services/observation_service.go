package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	appauth "github.com/sispe-project/sispe/internal/app/auth"
	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

// ObservationService handles the append-only clinical history
type ObservationService struct {
	obsRepo *repositories.ObservationRepository
	authz   *appauth.AuthorizationService
	reports *ReportService
	logger  zerolog.Logger
	now     func() time.Time
}

// NewObservationService creates a new ObservationService
func NewObservationService(
	obsRepo *repositories.ObservationRepository,
	authz *appauth.AuthorizationService,
	reports *ReportService,
	logger zerolog.Logger,
) *ObservationService {
	return &ObservationService{
		obsRepo: obsRepo,
		authz:   authz,
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

// Append stamps a note with the current local time and records it against
// a student owned by the calling clinician. Entries are never edited or
// removed afterwards.
func (s *ObservationService) Append(ctx context.Context, session *models.Session, studentID int64, note string) (*models.Observation, error) {
	student, err := s.authz.ValidateStudentOwnership(ctx, session, studentID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(note) == "" {
		return nil, apperrors.ErrEmptyObservation
	}

	entry := &models.Observation{
		StudentID: studentID,
		Timestamp: s.now().Format(models.ObservationTimeLayout),
		Note:      note,
	}

	id, err := s.obsRepo.Append(ctx, studentID, entry.Timestamp, entry.Note)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if _, err := s.reports.regenerate(ctx, student); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to regenerate report after observation")
	}

	s.logger.Info().Int64("studentID", studentID).Int64("observationID", id).Msg("Observation appended")
	return entry, nil
}

// History retrieves the full history of a readable student, newest first
func (s *ObservationService) History(ctx context.Context, session *models.Session, studentID int64) ([]*models.Observation, error) {
	if _, err := s.authz.ValidateStudentRead(ctx, session, studentID); err != nil {
		return nil, err
	}

	return s.obsRepo.History(ctx, studentID)
}

// Latest retrieves the most recent entry of a readable student, or nil
// when the history is empty
func (s *ObservationService) Latest(ctx context.Context, session *models.Session, studentID int64) (*models.Observation, error) {
	if _, err := s.authz.ValidateStudentRead(ctx, session, studentID); err != nil {
		return nil, err
	}

	return s.obsRepo.Latest(ctx, studentID)
}
