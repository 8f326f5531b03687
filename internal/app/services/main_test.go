package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	appauth "github.com/sispe-project/sispe/internal/app/auth"
	"github.com/sispe-project/sispe/internal/app/migrations"
	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	pkgauth "github.com/sispe-project/sispe/internal/pkg/auth"
	"github.com/sispe-project/sispe/internal/pkg/report"
)

// testEnv wires the full service stack against a private in-memory store
// and a throwaway report directory
type testEnv struct {
	db       *sql.DB
	repos    *repositories.Repositories
	exporter *report.Exporter

	auth         *AuthService
	users        *UserService
	students     *StudentService
	observations *ObservationService
	guardians    *GuardianService
	reports      *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.NewMigrator(db).Apply(context.Background()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	repos := repositories.NewRepositories(db)

	exporter, err := report.NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create exporter: %v", err)
	}

	authz := appauth.NewAuthorizationService(repos.StudentRepository, repos.GuardianLinkRepository)
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "sispe.test",
	})
	lgr := zerolog.Nop()

	env := &testEnv{db: db, repos: repos, exporter: exporter}
	env.auth = NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, lgr)
	env.reports = NewReportService(repos.ObservationRepository, authz, exporter, lgr)
	env.users = NewUserService(repos.UserRepository, repos.StudentRepository, authz, exporter, lgr)
	env.students = NewStudentService(repos.StudentRepository, repos.UserRepository, authz, env.reports, exporter, lgr)
	env.observations = NewObservationService(repos.ObservationRepository, authz, env.reports, lgr)
	env.guardians = NewGuardianService(repos.GuardianLinkRepository, repos.UserRepository, repos.StudentRepository, authz, lgr)

	return env
}

// seedUser inserts an account with a current-scheme password hash
func (env *testEnv) seedUser(t *testing.T, username, password string, role models.RoleType) {
	t.Helper()

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: hash, Role: role}
	if err := env.repos.UserRepository.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
}

// seedLegacyUser inserts an account with a first-generation password hash
func (env *testEnv) seedLegacyUser(t *testing.T, username, password string, role models.RoleType) {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: pkgauth.LegacyHashForSeed(password), Role: role}
	if err := env.repos.UserRepository.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
}

func sessionFor(username string, role models.RoleType) *models.Session {
	return &models.Session{Username: username, Role: role}
}

// seedStudent registers a student through the service as the given clinician
func (env *testEnv) seedStudent(t *testing.T, owner, name string) *models.Student {
	t.Helper()

	student, err := env.students.RegisterStudent(context.Background(), sessionFor(owner, models.RoleClinician), name, 10, 4, models.SeverityLow, "")
	if err != nil {
		t.Fatalf("failed to seed student %q: %v", name, err)
	}
	return student
}
