package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/sispe-project/sispe/internal/app/auth"
	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/report"
)

// ReportService produces the per-student PDF artifact
type ReportService struct {
	obsRepo  *repositories.ObservationRepository
	authz    *appauth.AuthorizationService
	exporter *report.Exporter
	logger   zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	obsRepo *repositories.ObservationRepository,
	authz *appauth.AuthorizationService,
	exporter *report.Exporter,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		obsRepo:  obsRepo,
		authz:    authz,
		exporter: exporter,
		logger:   logger,
	}
}

// ExportStudent writes the report for a student owned by the calling
// clinician and returns the path of the artifact.
func (s *ReportService) ExportStudent(ctx context.Context, session *models.Session, studentID int64) (string, error) {
	student, err := s.authz.ValidateStudentOwnership(ctx, session, studentID)
	if err != nil {
		return "", err
	}

	return s.regenerate(ctx, student)
}

// ArtifactPath returns the path where the report for a readable student
// lives, without regenerating it.
func (s *ReportService) ArtifactPath(ctx context.Context, session *models.Session, studentID int64) (string, error) {
	student, err := s.authz.ValidateStudentRead(ctx, session, studentID)
	if err != nil {
		return "", err
	}

	return s.exporter.Path(student.ID, student.Name), nil
}

// regenerate rebuilds the artifact from the full history. Student and
// observation mutations call this so the file on disk never lags the
// record.
func (s *ReportService) regenerate(ctx context.Context, student *models.Student) (string, error) {
	history, err := s.obsRepo.History(ctx, student.ID)
	if err != nil {
		return "", err
	}

	path, err := s.exporter.Export(student, history)
	if err != nil {
		return "", err
	}

	s.logger.Debug().Int64("studentID", student.ID).Str("path", path).Msg("Report regenerated")
	return path, nil
}
