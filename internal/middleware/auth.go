package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/MilanBhattarai77/intern-management-api/internal/constants"
	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	apierrors "github.com/MilanBhattarai77/intern-management-api/internal/errors"
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
	"github.com/MilanBhattarai77/intern-management-api/internal/repository"
)

// RequireAuth authenticates the request. It accepts a token in the
// Authorization header ("Token <key>" or "Bearer <key>") and falls back to the
// session cookie for browser clients. The resolved user is stored in the
// request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := userFromToken(c); ok {
			setCurrentUser(c, user)
			c.Next()
			return
		}

		if user, ok := userFromSession(c); ok {
			setCurrentUser(c, user)
			c.Next()
			return
		}

		apierrors.Unauthorized(c, "")
		c.Abort()
	}
}

func userFromToken(c *gin.Context) (models.User, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return models.User{}, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return models.User{}, false
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return models.User{}, false
	}

	token, err := repository.NewTokenRepository(database.GetDB()).FindByKey(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.User{}, false
	}

	if !token.User.IsActive {
		return models.User{}, false
	}

	return token.User, true
}

func userFromSession(c *gin.Context) (models.User, bool) {
	session := sessions.Default(c)
	raw := session.Get(constants.ContextKeyUserID)
	if raw == nil {
		return models.User{}, false
	}

	userID, ok := toUserID(raw)
	if !ok {
		return models.User{}, false
	}

	user, err := repository.NewUserRepository(database.GetDB()).FindByID(userID)
	if err != nil {
		return models.User{}, false
	}
	if !user.IsActive {
		return models.User{}, false
	}

	return *user, true
}

func setCurrentUser(c *gin.Context, user models.User) {
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)
}

func toUserID(raw interface{}) (uint64, bool) {
	switch v := raw.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	raw, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := raw.(models.User)
	return user, ok
}
