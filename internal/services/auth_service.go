package services

import (
	"errors"
	"fmt"

	"github.com/MilanBhattarai77/intern-management-api/internal/models"
	"github.com/MilanBhattarai77/intern-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrFailedToIssueToken = errors.New("failed to issue token")
)

// AuthService handles credential verification and token issuance.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// SignInInput holds the credentials for authentication.
type SignInInput struct {
	Username string
	Password string
}

// SignIn verifies credentials and returns the user together with their token.
// The token is get-or-create: repeated sign-ins return the same key.
func (s *AuthService) SignIn(input SignInInput) (*models.User, *models.AuthToken, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokenRepo.GetOrCreate(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}

	return user, token, nil
}

// HashPassword hashes a plaintext credential for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
