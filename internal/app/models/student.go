package models

// Severity is the ordered categorical severity level of a student record
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// ValidSeverity reports whether s belongs to the closed severity set
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Student defines the student model based on the 'students' table.
// Instances are value copies; mutations must be re-persisted explicitly.
type Student struct {
	ID            int64    `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	Room          int      `json:"room" db:"room"`
	Grade         int      `json:"grade" db:"grade"`
	Severity      Severity `json:"severity" db:"severity"`
	Observations  string   `json:"observations,omitempty" db:"observations"` // legacy single-field column, cleared on first history append
	OwnerUsername string   `json:"ownerUsername" db:"owner_username"`
}

// GuardianLink is a guardian-to-student association, unique per pair
type GuardianLink struct {
	StudentID        int64  `json:"studentId" db:"student_id"`
	GuardianUsername string `json:"guardianUsername" db:"guardian_username"`
}
