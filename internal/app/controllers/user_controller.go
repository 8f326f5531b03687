package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/models/dto"
	"github.com/sispe-project/sispe/internal/app/services"
	"github.com/sispe-project/sispe/internal/middleware"
)

// UserController handles account management operations
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser handles account creation
// @Summary Create an account
// @Description Creates an account with the given role. Administrative only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account information"
// @Success 201 {object} dto.UserResponse "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session := middleware.SessionFromContext(ctx)
	user, err := c.userService.CreateUser(ctx, session, req.Username, req.Password, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// DeleteUser handles account removal
// @Summary Delete an account
// @Description Removes an account along with its students, links and report artifacts. Administrators may delete any account; other sessions only their own.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} dto.SuccessResponse "Account deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{username} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	session := middleware.SessionFromContext(ctx)
	if err := c.userService.DeleteUser(ctx, session, ctx.Param("username")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Account deleted"})
}

// ListUsers handles account listing by role
// @Summary List accounts by role
// @Description Lists accounts carrying the given role. Administrative only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string true "Role" Enums(ADMIN, CLINICIAN, GUARDIAN)
// @Success 200 {object} dto.UserListResponse "Accounts"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	session := middleware.SessionFromContext(ctx)
	role := models.RoleType(ctx.Query("role"))

	users, err := c.userService.ListUsersByRole(ctx, session, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, user := range users {
		out.Users = append(out.Users, dto.ToUserResponse(user))
	}

	ctx.JSON(http.StatusOK, out)
}
