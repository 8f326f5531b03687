package dto

import "github.com/sispe-project/sispe/internal/app/models"

// CreateUserRequest represents an account creation request
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required,max=50"`
	Password string          `json:"password" binding:"required,max=50"`
	Role     models.RoleType `json:"role" binding:"required"`
}

// UserResponse represents basic account information
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserListResponse represents a list of accounts
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse maps a user to its response representation
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Role:     string(user.Role),
	}
}
