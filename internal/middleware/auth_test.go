package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MilanBhattarai77/intern-management-api/internal/constants"
	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

func setupAuthMiddlewareTest(t *testing.T) *gorm.DB {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AuthToken{}))

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.GET("/whoami", RequireAuth(), func(c *gin.Context) {
		user, _ := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return r
}

func createUserWithToken(t *testing.T, db *gorm.DB, username, key string, active bool) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleIntern,
		IsActive:     active,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.AuthToken{Key: key, UserID: user.ID}).Error)
	return user
}

func getWhoami(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_TokenScheme(t *testing.T) {
	db := setupAuthMiddlewareTest(t)
	createUserWithToken(t, db, "worker", "goodkey", true)

	r := protectedRouter()
	w := getWhoami(r, "Token goodkey")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "worker")
}

func TestRequireAuth_BearerScheme(t *testing.T) {
	db := setupAuthMiddlewareTest(t)
	createUserWithToken(t, db, "worker", "goodkey", true)

	r := protectedRouter()
	w := getWhoami(r, "Bearer goodkey")

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	db := setupAuthMiddlewareTest(t)
	createUserWithToken(t, db, "worker", "goodkey", true)

	r := protectedRouter()
	w := getWhoami(r, "Token wrongkey")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InactiveUser(t *testing.T) {
	db := setupAuthMiddlewareTest(t)
	createUserWithToken(t, db, "gone", "goodkey", false)

	r := protectedRouter()
	w := getWhoami(r, "Token goodkey")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	setupAuthMiddlewareTest(t)

	r := protectedRouter()
	w := getWhoami(r, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	db := setupAuthMiddlewareTest(t)
	createUserWithToken(t, db, "worker", "goodkey", true)

	r := protectedRouter()

	require.Equal(t, http.StatusUnauthorized, getWhoami(r, "goodkey").Code)
	require.Equal(t, http.StatusUnauthorized, getWhoami(r, "Basic goodkey").Code)
}

func TestRequireAuth_SessionFallback(t *testing.T) {
	db := setupAuthMiddlewareTest(t)
	user := createUserWithToken(t, db, "worker", "goodkey", true)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/fake-sign-in", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, user.ID)
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", RequireAuth(), func(c *gin.Context) {
		current, _ := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": current.Username})
	})

	signIn := httptest.NewRecorder()
	r.ServeHTTP(signIn, httptest.NewRequest(http.MethodPost, "/fake-sign-in", nil))
	require.Equal(t, http.StatusOK, signIn.Code)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, c := range signIn.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "worker")
}
