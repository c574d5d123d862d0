package repository

import (
	"errors"
	"fmt"

	"github.com/MilanBhattarai77/intern-management-api/internal/models"
	"github.com/MilanBhattarai77/intern-management-api/internal/utils"
	"gorm.io/gorm"
)

// ErrGenerateKey is returned when generating a token key fails.
var ErrGenerateKey = errors.New("token repository: generate key failed")

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// GetOrCreate returns the existing token for the user or issues a new one.
func (r *GormTokenRepository) GetOrCreate(userID uint64) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateKey, err)
	}

	token = models.AuthToken{
		Key:    key,
		UserID: userID,
	}
	if err := r.db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByKey finds a token by its key, preloading the owning user.
func (r *GormTokenRepository) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Preload("User").Where("auth_tokens.key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
