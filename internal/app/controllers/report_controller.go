package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/sispe-project/sispe/internal/app/models/dto"
	"github.com/sispe-project/sispe/internal/app/services"
	"github.com/sispe-project/sispe/internal/middleware"
)

// ReportController handles report export operations
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// ExportReport handles regenerating the PDF artifact
// @Summary Export a student report
// @Description Rebuilds the PDF report from the student record and full history. Only the owning clinician may export.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.ReportResponse "Report written"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Report export failed"
// @Router /students/{id}/report [post]
func (c *ReportController) ExportReport(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	session := middleware.SessionFromContext(ctx)
	path, err := c.reportService.ExportStudent(ctx, session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReportResponse{
		StudentID: id,
		Path:      path,
	})
}

// DownloadReport handles serving the PDF artifact
// @Summary Download a student report
// @Description Serves the PDF artifact of a readable student
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {file} file "PDF report"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student or report not found"
// @Router /students/{id}/report [get]
func (c *ReportController) DownloadReport(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	session := middleware.SessionFromContext(ctx)
	path, err := c.reportService.ArtifactPath(ctx, session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(path, filepath.Base(path))
}
