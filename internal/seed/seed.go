package seed

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	appModels "github.com/sispe-project/sispe/internal/app/models"
	appRepos "github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/auth"
)

// Default administrator credentials, created only when the store holds no
// accounts at all. The password is stored in the legacy hash format so the
// first login exercises the credential upgrade path, exactly as a store
// migrated from an old deployment would.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "123"
)

// CreateDefaultData seeds the default administrator if the store is empty
func CreateDefaultData(ctx context.Context, db *sql.DB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(db)

	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("users", count).Msg("Store already holds accounts, skipping seed")
		return nil
	}

	admin := &appModels.User{
		Username:     defaultAdminUsername,
		PasswordHash: auth.LegacyHashForSeed(defaultAdminPassword),
		Role:         appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Default administrator created")
	return nil
}
