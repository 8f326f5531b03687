package dto

// LinkGuardianRequest represents a guardian link request
type LinkGuardianRequest struct {
	GuardianUsername string `json:"guardianUsername" binding:"required,max=50"`
}

// GuardianListResponse represents the guardians linked to a student
type GuardianListResponse struct {
	StudentID int64    `json:"studentId"`
	Guardians []string `json:"guardians"`
}

// ReportResponse represents a generated report artifact
type ReportResponse struct {
	StudentID int64  `json:"studentId"`
	Path      string `json:"path" example:"reports/Relatorio_3_Maria_Silva.pdf"`
}
