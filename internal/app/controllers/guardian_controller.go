package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sispe-project/sispe/internal/app/models/dto"
	"github.com/sispe-project/sispe/internal/app/services"
	"github.com/sispe-project/sispe/internal/middleware"
)

// GuardianController handles guardian link operations
type GuardianController struct {
	guardianService *services.GuardianService
}

// NewGuardianController creates a new GuardianController
func NewGuardianController(guardianService *services.GuardianService) *GuardianController {
	return &GuardianController{
		guardianService: guardianService,
	}
}

// LinkGuardian handles attaching a guardian to a student
// @Summary Link a guardian
// @Description Attaches a guardian account to a student. Administrative only.
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.LinkGuardianRequest true "Guardian username"
// @Success 201 {object} dto.SuccessResponse "Guardian linked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student or guardian not found"
// @Failure 409 {object} dto.ErrorResponse "Guardian already linked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/guardians [post]
func (c *GuardianController) LinkGuardian(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	var req dto.LinkGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid link data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session := middleware.SessionFromContext(ctx)
	if err := c.guardianService.LinkGuardian(ctx, session, id, req.GuardianUsername); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Message: "Guardian linked"})
}

// UnlinkGuardian handles detaching a guardian from a student
// @Summary Unlink a guardian
// @Description Detaches a guardian account from a student. Administrative only.
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param username path string true "Guardian username"
// @Success 200 {object} dto.SuccessResponse "Guardian unlinked"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/guardians/{username} [delete]
func (c *GuardianController) UnlinkGuardian(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	session := middleware.SessionFromContext(ctx)
	if err := c.guardianService.UnlinkGuardian(ctx, session, id, ctx.Param("username")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Guardian unlinked"})
}

// ListGuardians handles listing the guardians of a student
// @Summary List guardians
// @Description Lists the guardian usernames linked to a readable student
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.GuardianListResponse "Guardians"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/guardians [get]
func (c *GuardianController) ListGuardians(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	session := middleware.SessionFromContext(ctx)
	guardians, err := c.guardianService.ListGuardians(ctx, session, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GuardianListResponse{
		StudentID: id,
		Guardians: guardians,
	})
}
