package repository

import (
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ListActive lists all active users
	ListActive() ([]models.User, error)
}

// TokenRepository defines the interface for auth token data access
type TokenRepository interface {
	// GetOrCreate returns the user's token, creating one on first sign-in.
	// The same key is returned across repeated sign-ins.
	GetOrCreate(userID uint64) (*models.AuthToken, error)

	// FindByKey finds a token by its key
	FindByKey(key string) (*models.AuthToken, error)
}
