package dto

import "github.com/sispe-project/sispe/internal/app/models"

// AppendObservationRequest represents a new history entry
type AppendObservationRequest struct {
	Note string `json:"note" binding:"required"`
}

// ObservationResponse represents a single history entry
type ObservationResponse struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp" example:"14/03/2026 09:41:27"`
	Note      string `json:"note"`
}

// ObservationListResponse represents a student's history, newest first
type ObservationListResponse struct {
	StudentID    int64                 `json:"studentId"`
	Observations []ObservationResponse `json:"observations"`
}

// ToObservationResponse maps a history entry to its response representation
func ToObservationResponse(entry *models.Observation) ObservationResponse {
	return ObservationResponse{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Note:      entry.Note,
	}
}

// ToObservationListResponse maps a student's history
func ToObservationListResponse(studentID int64, entries []*models.Observation) ObservationListResponse {
	out := ObservationListResponse{
		StudentID:    studentID,
		Observations: make([]ObservationResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		out.Observations = append(out.Observations, ToObservationResponse(entry))
	}
	return out
}
