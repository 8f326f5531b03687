package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sispe-project/sispe/internal/config"
	"github.com/sispe-project/sispe/internal/pkg/logger"
)

// SQLiteDB database connection structure
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens the file-backed SQLite store
func NewSQLiteDB(cfg *config.Config) (*SQLiteDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := sql.Open("sqlite", cfg.GetSQLiteDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single local user, single session: one connection avoids SQLITE_BUSY
	// without any locking of our own.
	database.SetMaxOpenConns(1)

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &SQLiteDB{DB: database}, nil
}

// Close closing method
func (d *SQLiteDB) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTx runs a function within a transaction
func WithTx(ctx context.Context, database *sql.DB, fn TransactionFn) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback on panic
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
