package dto

import (
	"time"

	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

// UserDTO represents a user profile in API responses. The credential is
// write-only and never appears here.
type UserDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	BirthDate *time.Time  `json:"birth_date"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateUserRequest is the payload for creating a user profile.
type CreateUserRequest struct {
	Username  string      `json:"username" binding:"required,max=20"`
	Email     string      `json:"email" binding:"required,email,max=50"`
	Password  string      `json:"password" binding:"required,min=8"`
	Role      models.Role `json:"role" binding:"required,oneof=Supervisor Intern"`
	IsActive  *bool       `json:"is_active"`
	BirthDate *time.Time  `json:"birth_date"`
}

// UpdateUserRequest is the payload for updating a user profile. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Username  *string      `json:"username" binding:"omitempty,max=20"`
	Email     *string      `json:"email" binding:"omitempty,email,max=50"`
	Password  *string      `json:"password" binding:"omitempty,min=8"`
	Role      *models.Role `json:"role" binding:"omitempty,oneof=Supervisor Intern"`
	IsActive  *bool        `json:"is_active"`
	BirthDate *time.Time   `json:"birth_date"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		BirthDate: user.BirthDate,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
