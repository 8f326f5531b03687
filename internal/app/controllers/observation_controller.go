package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sispe-project/sispe/internal/app/models/dto"
	"github.com/sispe-project/sispe/internal/app/services"
	"github.com/sispe-project/sispe/internal/middleware"
)

// ObservationController handles observation history operations
type ObservationController struct {
	observationService *services.ObservationService
}

// NewObservationController creates a new ObservationController
func NewObservationController(observationService *services.ObservationService) *ObservationController {
	return &ObservationController{
		observationService: observationService,
	}
}

// AppendObservation handles recording a new history entry
// @Summary Append an observation
// @Description Stamps a note with the current time and appends it to a student's history. Only the owning clinician may append; entries are never edited or removed.
// @Tags observations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.AppendObservationRequest true "Observation note"
// @Success 201 {object} dto.ObservationResponse "Observation recorded"
// @Failure 400 {object} dto.ErrorResponse "Empty note or invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/observations [post]
func (c *ObservationController) AppendObservation(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AppendObservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid observation data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session := middleware.SessionFromContext(ctx)
	entry, err := c.observationService.Append(ctx, session, id, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToObservationResponse(entry))
}

// GetHistory handles retrieving a student's full history
// @Summary Get observation history
// @Description Retrieves the full history of a readable student, newest first
// @Tags observations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.ObservationListResponse "History"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/observations [get]
func (c *ObservationController) GetHistory(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	session := middleware.SessionFromContext(ctx)
	entries, err := c.observationService.History(ctx, session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObservationListResponse(id, entries))
}

// GetLatest handles retrieving the most recent entry
// @Summary Get the latest observation
// @Description Retrieves the most recent history entry of a readable student
// @Tags observations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.ObservationResponse "Latest entry"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found or history empty"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/observations/latest [get]
func (c *ObservationController) GetLatest(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	session := middleware.SessionFromContext(ctx)
	entry, err := c.observationService.Latest(ctx, session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if entry == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "History is empty")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToObservationResponse(entry))
}
