package repositories

import "database/sql"

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	GuardianLinkRepository *GuardianLinkRepository
	ObservationRepository  *ObservationRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		GuardianLinkRepository: NewGuardianLinkRepository(db),
		ObservationRepository:  NewObservationRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
