package dberrors

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsUniqueViolation checks if the error is a SQLite unique or primary key
// constraint violation. With an optional column hint (e.g. "users.username")
// it only matches violations naming that column.
func IsUniqueViolation(err error, columnHint string) bool {
	if err == nil {
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code != sqlite3.SQLITE_CONSTRAINT_UNIQUE && code != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return false
		}
		if columnHint == "" {
			return true
		}
		return strings.Contains(liteErr.Error(), columnHint)
	}

	// Some paths wrap the driver error into a plain string; fall back to
	// the canonical SQLite message.
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return columnHint == "" || strings.Contains(msg, columnHint)
}

// IsForeignKeyViolation checks if the error is a SQLite foreign key
// constraint violation.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
