package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

func TestStudentService_RegisterStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)

	student, err := env.students.RegisterStudent(ctx, sessionFor("mhelena", models.RoleClinician), "Maria Silva", 12, 5, models.SeverityMedium, "nota inicial")
	if err != nil {
		t.Fatalf("RegisterStudent returned error: %v", err)
	}
	if student.ID == 0 {
		t.Fatal("expected generated id")
	}
	if student.OwnerUsername != "mhelena" {
		t.Fatalf("unexpected owner: %q", student.OwnerUsername)
	}

	// Registration writes the initial report artifact
	if _, err := os.Stat(env.exporter.Path(student.ID, student.Name)); err != nil {
		t.Fatalf("initial artifact missing: %v", err)
	}
}

func TestStudentService_RegisterStudent_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	clinician := sessionFor("mhelena", models.RoleClinician)

	cases := []struct {
		name     string
		student  string
		room     int
		grade    int
		severity models.Severity
		want     error
	}{
		{"empty name", "  ", 1, 1, models.SeverityLow, apperrors.ErrInvalidArgument},
		{"zero room", "Maria", 0, 1, models.SeverityLow, apperrors.ErrInvalidArgument},
		{"negative grade", "Maria", 1, -2, models.SeverityLow, apperrors.ErrInvalidArgument},
		{"unknown severity", "Maria", 1, 1, models.Severity("EXTREME"), apperrors.ErrInvalidSeverity},
	}

	for _, tc := range cases {
		if _, err := env.students.RegisterStudent(ctx, clinician, tc.student, tc.room, tc.grade, tc.severity, ""); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// Only clinicians register students
	if _, err := env.students.RegisterStudent(ctx, sessionFor("admin", models.RoleAdmin), "Maria", 1, 1, models.SeverityLow, ""); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestStudentService_UpdateStudent_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	env.seedUser(t, "rcampos", "s", models.RoleClinician)
	student := env.seedStudent(t, "mhelena", "Maria")

	_, err := env.students.UpdateStudent(ctx, sessionFor("rcampos", models.RoleClinician), student.ID, "Maria", 1, 1, models.SeverityLow)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// Denied update must not mutate the record
	got, err := env.repos.StudentRepository.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Room != student.Room || got.Severity != student.Severity {
		t.Fatalf("record mutated by denied update: %+v", got)
	}
}

func TestStudentService_UpdateStudent_RenameReplacesArtifact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	student := env.seedStudent(t, "mhelena", "Maria")

	oldArtifact := env.exporter.Path(student.ID, "Maria")
	if _, err := os.Stat(oldArtifact); err != nil {
		t.Fatalf("artifact missing before rename: %v", err)
	}

	updated, err := env.students.UpdateStudent(ctx, sessionFor("mhelena", models.RoleClinician), student.ID, "Maria Silva", 7, 6, models.SeverityHigh)
	if err != nil {
		t.Fatalf("UpdateStudent returned error: %v", err)
	}
	if updated.Name != "Maria Silva" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}

	if _, err := os.Stat(oldArtifact); !os.IsNotExist(err) {
		t.Fatal("stale artifact with the old name still present")
	}
	if _, err := os.Stat(env.exporter.Path(student.ID, "Maria Silva")); err != nil {
		t.Fatalf("artifact with the new name missing: %v", err)
	}
}

func TestStudentService_DeleteStudent_RemovesArtifact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	student := env.seedStudent(t, "mhelena", "Maria")

	if err := env.students.DeleteStudent(ctx, sessionFor("mhelena", models.RoleClinician), student.ID); err != nil {
		t.Fatalf("DeleteStudent returned error: %v", err)
	}

	if _, err := env.repos.StudentRepository.GetByID(ctx, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected student gone, got %v", err)
	}
	if _, err := os.Stat(env.exporter.Path(student.ID, "Maria")); !os.IsNotExist(err) {
		t.Fatal("artifact still present after delete")
	}
}

func TestStudentService_ListStudents_PerRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	env.seedUser(t, "rcampos", "s", models.RoleClinician)
	env.seedUser(t, "jcosta", "s", models.RoleGuardian)

	maria := env.seedStudent(t, "mhelena", "Maria")
	env.seedStudent(t, "rcampos", "Luca")

	if err := env.guardians.LinkGuardian(ctx, sessionFor("admin", models.RoleAdmin), maria.ID, "jcosta"); err != nil {
		t.Fatalf("LinkGuardian returned error: %v", err)
	}

	owned, err := env.students.ListStudents(ctx, sessionFor("mhelena", models.RoleClinician))
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}
	if len(owned) != 1 || owned[0].Name != "Maria" {
		t.Fatalf("unexpected case load: %+v", owned)
	}

	linked, err := env.students.ListStudents(ctx, sessionFor("jcosta", models.RoleGuardian))
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != maria.ID {
		t.Fatalf("unexpected linked students: %+v", linked)
	}

	// An administrator carries no case load of their own; browsing goes
	// through a named clinician instead.
	if _, err := env.students.ListStudents(ctx, sessionFor("admin", models.RoleAdmin)); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for admin own listing, got %v", err)
	}

	browsed, err := env.students.ListStudentsByOwner(ctx, sessionFor("admin", models.RoleAdmin), "mhelena")
	if err != nil {
		t.Fatalf("ListStudentsByOwner returned error: %v", err)
	}
	if len(browsed) != 1 || browsed[0].Name != "Maria" {
		t.Fatalf("unexpected browsed case load: %+v", browsed)
	}
}

func TestStudentService_ListStudentsByOwner_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	env.seedUser(t, "jcosta", "s", models.RoleGuardian)
	env.seedStudent(t, "mhelena", "Maria")

	for _, session := range []*models.Session{
		sessionFor("mhelena", models.RoleClinician),
		sessionFor("jcosta", models.RoleGuardian),
		nil,
	} {
		if _, err := env.students.ListStudentsByOwner(ctx, session, "mhelena"); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	}

	admin := sessionFor("admin", models.RoleAdmin)

	if _, err := env.students.ListStudentsByOwner(ctx, admin, "ninguem"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown clinician, got %v", err)
	}

	if _, err := env.students.ListStudentsByOwner(ctx, admin, "jcosta"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for non-clinician account, got %v", err)
	}
}

func TestStudentService_GetStudent_ReadAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "mhelena", "s", models.RoleClinician)
	env.seedUser(t, "rcampos", "s", models.RoleClinician)
	env.seedUser(t, "jcosta", "s", models.RoleGuardian)
	env.seedUser(t, "outra", "s", models.RoleGuardian)
	student := env.seedStudent(t, "mhelena", "Maria")

	if err := env.guardians.LinkGuardian(ctx, sessionFor("admin", models.RoleAdmin), student.ID, "jcosta"); err != nil {
		t.Fatalf("LinkGuardian returned error: %v", err)
	}

	for _, session := range []*models.Session{
		sessionFor("mhelena", models.RoleClinician),
		sessionFor("jcosta", models.RoleGuardian),
		sessionFor("admin", models.RoleAdmin),
	} {
		if _, err := env.students.GetStudent(ctx, session, student.ID); err != nil {
			t.Fatalf("session %s/%s: GetStudent returned error: %v", session.Username, session.Role, err)
		}
	}

	for _, session := range []*models.Session{
		sessionFor("rcampos", models.RoleClinician),
		sessionFor("outra", models.RoleGuardian),
		nil,
	} {
		if _, err := env.students.GetStudent(ctx, session, student.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	}
}
