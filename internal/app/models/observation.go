package models

// ObservationTimeLayout is the timestamp layout stored with each history
// entry: day/month/year hour:minute:second, local time.
const ObservationTimeLayout = "02/01/2006 15:04:05"

// Observation is one append-only history entry for a student.
// Entries are never updated or deleted individually.
type Observation struct {
	ID        int64  `json:"id" db:"id"`
	StudentID int64  `json:"studentId" db:"student_id"`
	Timestamp string `json:"timestamp" db:"timestamp" example:"21/08/2026 14:03:55"`
	Note      string `json:"note" db:"note"`
}
