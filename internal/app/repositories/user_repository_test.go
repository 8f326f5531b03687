package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)

	user, err := repo.GetByUsername(ctx, "mhelena")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if user.Role != models.RoleClinician {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)

	err := repo.Create(ctx, &models.User{Username: "mhelena", PasswordHash: "y", Role: models.RoleAdmin})
	if !errors.Is(err, apperrors.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)

	_, err := NewUserRepository(db).GetByUsername(context.Background(), "ninguem")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)

	if err := repo.UpdatePasswordHash(ctx, "mhelena", "novo-hash"); err != nil {
		t.Fatalf("UpdatePasswordHash returned error: %v", err)
	}

	user, err := repo.GetByUsername(ctx, "mhelena")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if user.PasswordHash != "novo-hash" {
		t.Fatalf("hash not persisted: %q", user.PasswordHash)
	}

	if err := repo.UpdatePasswordHash(ctx, "ninguem", "h"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	studentRepo := NewStudentRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)
	mustCreateUser(t, db, "jcosta", models.RoleGuardian)
	student := mustCreateStudent(t, db, "Maria", "mhelena")

	if err := NewGuardianLinkRepository(db).Link(ctx, student.ID, "jcosta"); err != nil {
		t.Fatalf("Link returned error: %v", err)
	}
	if _, err := NewObservationRepository(db).Append(ctx, student.ID, "01/01/2026 10:00:00", "nota"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	if err := userRepo.Delete(ctx, "mhelena"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := studentRepo.GetByID(ctx, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected cascaded student removal, got %v", err)
	}

	var links, history int
	if err := db.QueryRow(`SELECT COUNT(*) FROM guardian_links`).Scan(&links); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM observation_history`).Scan(&history); err != nil {
		t.Fatalf("count history: %v", err)
	}
	if links != 0 || history != 0 {
		t.Fatalf("expected cascades, got links=%d history=%d", links, history)
	}
}

func TestUserRepository_CountAndListByRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "admin", models.RoleAdmin)
	mustCreateUser(t, db, "g1", models.RoleGuardian)
	mustCreateUser(t, db, "g2", models.RoleGuardian)

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 users, got %d", count)
	}

	guardians, err := repo.ListByRole(ctx, models.RoleGuardian)
	if err != nil {
		t.Fatalf("ListByRole returned error: %v", err)
	}
	if len(guardians) != 2 {
		t.Fatalf("expected 2 guardians, got %d", len(guardians))
	}
}
