package dto

import "github.com/sispe-project/sispe/internal/app/models"

// RegisterStudentRequest represents a student registration request
type RegisterStudentRequest struct {
	Name         string          `json:"name" binding:"required"`
	Room         int             `json:"room" binding:"required,min=1"`
	Grade        int             `json:"grade" binding:"required,min=1"`
	Severity     models.Severity `json:"severity" binding:"required"`
	Observations string          `json:"observations"`
}

// UpdateStudentRequest represents a student update request
type UpdateStudentRequest struct {
	Name     string          `json:"name" binding:"required"`
	Room     int             `json:"room" binding:"required,min=1"`
	Grade    int             `json:"grade" binding:"required,min=1"`
	Severity models.Severity `json:"severity" binding:"required"`
}

// StudentResponse represents a student record
type StudentResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Room         int    `json:"room"`
	Grade        int    `json:"grade"`
	Severity     string `json:"severity"`
	Observations string `json:"observations,omitempty"`
	Owner        string `json:"owner"`
}

// StudentListResponse represents a list of students
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
}

// ToStudentResponse maps a student to its response representation
func ToStudentResponse(student *models.Student) StudentResponse {
	return StudentResponse{
		ID:           student.ID,
		Name:         student.Name,
		Room:         student.Room,
		Grade:        student.Grade,
		Severity:     string(student.Severity),
		Observations: student.Observations,
		Owner:        student.OwnerUsername,
	}
}

// ToStudentListResponse maps a slice of students
func ToStudentListResponse(students []*models.Student) StudentListResponse {
	out := StudentListResponse{Students: make([]StudentResponse, 0, len(students))}
	for _, student := range students {
		out.Students = append(out.Students, ToStudentResponse(student))
	}
	return out
}
