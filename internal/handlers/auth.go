package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/MilanBhattarai77/intern-management-api/internal/constants"
	apierrors "github.com/MilanBhattarai77/intern-management-api/internal/errors"
	"github.com/MilanBhattarai77/intern-management-api/internal/services"
)

// AuthHandler coordinates sign-in and sign-out.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignIn authenticates a user, issues (or reuses) their token and initializes
// the session.
func (h *AuthHandler) SignIn(c *gin.Context) {
	type SignInRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	user, token, err := h.authService.SignIn(services.SignInInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid credentials.")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign-in successful.",
		"token":   token.Key,
	})
}

// SignOut clears the session. The token itself stays valid; only the session
// is invalidated.
func (h *AuthHandler) SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to sign out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign-out successful.",
	})
}
