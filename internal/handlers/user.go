package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	"github.com/MilanBhattarai77/intern-management-api/internal/dto"
	apierrors "github.com/MilanBhattarai77/intern-management-api/internal/errors"
	"github.com/MilanBhattarai77/intern-management-api/internal/middleware"
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
	"github.com/MilanBhattarai77/intern-management-api/internal/policy"
	"github.com/MilanBhattarai77/intern-management-api/internal/services"
	"gorm.io/gorm"
)

// UserHandler handles CRUD operations on user profiles.
type UserHandler struct{}

// NewUserHandler creates a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// ListUsers returns every profile. Open to any authenticated actor.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch profiles")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a single profile by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		apierrors.NotFound(c, "UserProfile not found.")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// CreateUser creates a profile. Supervisor-only; the policy check runs before
// payload validation.
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.ForUser(actor, policy.OpCreate) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can create profiles.")
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	taken, field, err := usernameOrEmailTaken(req.Username, req.Email, 0)
	if err != nil {
		apierrors.InternalError(c, "Failed to check uniqueness")
		return
	}
	if taken {
		apierrors.FieldError(c, field, "A user with that "+field+" already exists.")
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		apierrors.InternalError(c, "Failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		BirthDate:    req.BirthDate,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(user))
}

// UpdateUser updates a profile. The lookup runs before the policy check, so
// profile existence is observable; writes stay Supervisor-only.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		apierrors.NotFound(c, "UserProfile not found.")
		return
	}

	if policy.ForUser(actor, policy.OpUpdate) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can update profiles.")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	username := user.Username
	email := user.Email
	if req.Username != nil {
		username = *req.Username
	}
	if req.Email != nil {
		email = *req.Email
	}
	taken, field, err := usernameOrEmailTaken(username, email, user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to check uniqueness")
		return
	}
	if taken {
		apierrors.FieldError(c, field, "A user with that "+field+" already exists.")
		return
	}

	user.Username = username
	user.Email = email
	if req.Password != nil {
		hash, err := services.HashPassword(*req.Password)
		if err != nil {
			apierrors.InternalError(c, "Failed to hash password")
			return
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// DeleteUser deletes a profile. Tasks assigned to the user and their
// attendance records go with it; tasks they assigned survive with the assigner
// cleared.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		apierrors.NotFound(c, "UserProfile not found.")
		return
	}

	if policy.ForUser(actor, policy.OpDelete) != policy.Allowed {
		apierrors.Forbidden(c, "Only supervisors can delete profiles.")
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assigned_to_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).
			Where("assigned_by_id = ?", user.ID).
			Update("assigned_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to delete profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "UserProfile deleted.",
	})
}

// parseID reads the :id route parameter, responding 404 on garbage input the
// same way a missing record would.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// usernameOrEmailTaken checks global uniqueness, excluding the record being
// updated.
func usernameOrEmailTaken(username, email string, excludeID uint64) (bool, string, error) {
	var count int64
	if err := database.GetDB().Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error; err != nil {
		return false, "", err
	}
	if count > 0 {
		return true, "username", nil
	}

	if err := database.GetDB().Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error; err != nil {
		return false, "", err
	}
	if count > 0 {
		return true, "email", nil
	}

	return false, "", nil
}
