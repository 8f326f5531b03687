package models

// RoleType defines the closed set of user roles
type RoleType string

const (
	// RoleAdmin is the administrative role: creates accounts and guardian links
	RoleAdmin RoleType = "ADMIN"
	// RoleClinician registers and follows students and writes observations
	RoleClinician RoleType = "CLINICIAN"
	// RoleGuardian has read-only access to linked students
	RoleGuardian RoleType = "GUARDIAN"
)

// ValidRole reports whether r belongs to the closed role set
func ValidRole(r RoleType) bool {
	switch r {
	case RoleAdmin, RoleClinician, RoleGuardian:
		return true
	}
	return false
}

// MaxCredentialLength bounds username and password length on account creation
const MaxCredentialLength = 50

// User defines the user model based on the 'users' table.
// The username is the primary key; there is no surrogate id.
type User struct {
	Username     string   `json:"username" db:"username" example:"mhelena"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Role         RoleType `json:"role" db:"role" example:"CLINICIAN"`
}

// Session is the identity attached to every access-controlled operation.
// It is an explicit value rather than ambient process state so that two
// sessions can coexist in tests even though the tool is single-user.
type Session struct {
	Username string   `json:"username"`
	Role     RoleType `json:"role"`
}
