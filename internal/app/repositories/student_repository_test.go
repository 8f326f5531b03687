package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

func TestStudentRepository_CreateAssignsID(t *testing.T) {
	db := newTestDB(t)

	mustCreateUser(t, db, "mhelena", models.RoleClinician)
	first := mustCreateStudent(t, db, "Maria", "mhelena")
	second := mustCreateStudent(t, db, "Luca", "mhelena")

	if first.ID == 0 || second.ID == 0 {
		t.Fatal("expected generated ids")
	}
	if second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestStudentRepository_CreateUnknownOwner(t *testing.T) {
	db := newTestDB(t)

	err := NewStudentRepository(db).Create(context.Background(), &models.Student{
		Name:          "Maria",
		Room:          1,
		Grade:         1,
		Severity:      models.SeverityLow,
		OwnerUsername: "ninguem",
	})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStudentRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)
	student := mustCreateStudent(t, db, "Maria", "mhelena")

	if err := repo.Update(ctx, student.ID, "Maria Silva", 7, 6, models.SeverityHigh); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := repo.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Name != "Maria Silva" || got.Room != 7 || got.Grade != 6 || got.Severity != models.SeverityHigh {
		t.Fatalf("update not persisted: %+v", got)
	}
	if got.OwnerUsername != "mhelena" {
		t.Fatalf("owner must not change on update, got %q", got.OwnerUsername)
	}

	if err := repo.Update(ctx, 9999, "x", 1, 1, models.SeverityLow); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)
	student := mustCreateStudent(t, db, "Maria", "mhelena")

	if err := repo.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByID(ctx, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound on second delete, got %v", err)
	}
}

func TestStudentRepository_GetByOwnerAndGuardian(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudentRepository(db)
	linkRepo := NewGuardianLinkRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "mhelena", models.RoleClinician)
	mustCreateUser(t, db, "rcampos", models.RoleClinician)
	mustCreateUser(t, db, "jcosta", models.RoleGuardian)

	maria := mustCreateStudent(t, db, "Maria", "mhelena")
	mustCreateStudent(t, db, "Luca", "rcampos")

	owned, err := repo.GetByOwner(ctx, "mhelena")
	if err != nil {
		t.Fatalf("GetByOwner returned error: %v", err)
	}
	if len(owned) != 1 || owned[0].Name != "Maria" {
		t.Fatalf("unexpected case load: %+v", owned)
	}

	if err := linkRepo.Link(ctx, maria.ID, "jcosta"); err != nil {
		t.Fatalf("Link returned error: %v", err)
	}

	linked, err := repo.GetByGuardian(ctx, "jcosta")
	if err != nil {
		t.Fatalf("GetByGuardian returned error: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != maria.ID {
		t.Fatalf("unexpected linked students: %+v", linked)
	}

	empty, err := repo.GetByGuardian(ctx, "semvinculo")
	if err != nil {
		t.Fatalf("GetByGuardian returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no students, got %d", len(empty))
	}
}
