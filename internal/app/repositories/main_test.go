package repositories

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/sispe-project/sispe/internal/app/migrations"
	"github.com/sispe-project/sispe/internal/app/models"
)

// newTestDB opens a private in-memory store with the full schema applied
func newTestDB(t *testing.T) *sql.DB {
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

	return db
}

// mustCreateUser inserts a user or fails the test
func mustCreateUser(t *testing.T, db *sql.DB, username string, role models.RoleType) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "x", Role: role}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

// mustCreateStudent inserts a student owned by owner or fails the test
func mustCreateStudent(t *testing.T, db *sql.DB, name, owner string) *models.Student {
	t.Helper()

	student := &models.Student{
		Name:          name,
		Room:          10,
		Grade:         4,
		Severity:      models.SeverityLow,
		OwnerUsername: owner,
	}
	if err := NewStudentRepository(db).Create(context.Background(), student); err != nil {
		t.Fatalf("failed to create student %q: %v", name, err)
	}
	return student
}
