package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MilanBhattarai77/intern-management-api/internal/constants"
	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	"github.com/MilanBhattarai77/intern-management-api/internal/models"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *UserHandler
}

// SetupTest runs before each test
func (suite *UserHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Task{},
		&models.Attendance{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.handler = NewUserHandler()

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *UserHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserHandlerTestSuite) createTestUser(username string, role models.Role) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *UserHandlerTestSuite) createAuthContext(method, url string, body []byte, actor *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, actor.ID)
	c.Set(constants.ContextKeyUser, *actor)

	return c, w
}

func (suite *UserHandlerTestSuite) setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

// TestListUsers_AnyAuthenticated tests that interns can list profiles
func (suite *UserHandlerTestSuite) TestListUsers_AnyAuthenticated() {
	suite.createTestUser("boss", models.RoleSupervisor)
	intern := suite.createTestUser("worker", models.RoleIntern)

	c, w := suite.createAuthContext("GET", "/users", nil, intern)

	suite.handler.ListUsers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 2)
}

// TestListUsers_NoPasswordLeak tests that the credential never serializes
func (suite *UserHandlerTestSuite) TestListUsers_NoPasswordLeak() {
	intern := suite.createTestUser("worker", models.RoleIntern)

	c, w := suite.createAuthContext("GET", "/users", nil, intern)

	suite.handler.ListUsers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "password")
	assert.NotContains(suite.T(), w.Body.String(), "hashedpassword")
}

// TestGetUser_Success tests single profile retrieval
func (suite *UserHandlerTestSuite) TestGetUser_Success() {
	intern := suite.createTestUser("worker", models.RoleIntern)

	c, w := suite.createAuthContext("GET", "/users/1", nil, intern)
	suite.setIDParam(c, intern.ID)

	suite.handler.GetUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "worker", response["username"])
}

// TestGetUser_NotFound tests retrieval of an absent profile
func (suite *UserHandlerTestSuite) TestGetUser_NotFound() {
	intern := suite.createTestUser("worker", models.RoleIntern)

	c, w := suite.createAuthContext("GET", "/users/999", nil, intern)
	suite.setIDParam(c, 999)

	suite.handler.GetUser(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateUser_Supervisor tests successful profile creation
func (suite *UserHandlerTestSuite) TestCreateUser_Supervisor() {
	supervisor := suite.createTestUser("boss", models.RoleSupervisor)

	requestBody := map[string]interface{}{
		"username": "newintern",
		"email":    "newintern@example.com",
		"password": "supersecret",
		"role":     "Intern",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/users", body, supervisor)

	suite.handler.CreateUser(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "newintern", response["username"])
	assert.Equal(suite.T(), true, response["is_active"])
	assert.NotContains(suite.T(), response, "password")
}

// TestCreateUser_InternForbidden tests that interns cannot create profiles,
// checked before the payload is even validated
func (suite *UserHandlerTestSuite) TestCreateUser_InternForbidden() {
	intern := suite.createTestUser("worker", models.RoleIntern)

	// Deliberately invalid payload: the policy check comes first
	body, _ := json.Marshal(map[string]interface{}{})

	c, w := suite.createAuthContext("POST", "/users", body, intern)

	suite.handler.CreateUser(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCreateUser_DuplicateUsername tests the uniqueness constraint
func (suite *UserHandlerTestSuite) TestCreateUser_DuplicateUsername() {
	supervisor := suite.createTestUser("boss", models.RoleSupervisor)
	suite.createTestUser("worker", models.RoleIntern)

	requestBody := map[string]interface{}{
		"username": "worker",
		"email":    "fresh@example.com",
		"password": "supersecret",
		"role":     "Intern",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/users", body, supervisor)

	suite.handler.CreateUser(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	details := response["details"].(map[string]interface{})
	assert.Contains(suite.T(), details, "username")
}

// TestCreateUser_UniquenessCheckUnavailable tests that a failing uniqueness
// query surfaces as a server error, not a validation error
func (suite *UserHandlerTestSuite) TestCreateUser_UniquenessCheckUnavailable() {
	supervisor := suite.createTestUser("boss", models.RoleSupervisor)

	requestBody := map[string]interface{}{
		"username": "newintern",
		"email":    "newintern@example.com",
		"password": "supersecret",
		"role":     "Intern",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/users", body, supervisor)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()

	suite.handler.CreateUser(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

// TestCreateUser_InvalidRole tests the role enum validation
func (suite *UserHandlerTestSuite) TestCreateUser_InvalidRole() {
	supervisor := suite.createTestUser("boss", models.RoleSupervisor)

	requestBody := map[string]interface{}{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
		"role":     "Manager",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/users", body, supervisor)

	suite.handler.CreateUser(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateUser_Supervisor tests a partial profile update
func (suite *UserHandlerTestSuite) TestUpdateUser_Supervisor() {
	supervisor := suite.createTestUser("boss", models.RoleSupervisor)
	intern := suite.createTestUser("worker", models.RoleIntern)

	requestBody := map[string]interface{}{
		"email":     "renamed@example.com",
		"is_active": false,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/users/2", body, supervisor)
	suite.setIDParam(c, intern.ID)

	suite.handler.UpdateUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "renamed@example.com", response["email"])
	assert.Equal(suite.T(), false, response["is_active"])
	// Untouched field survives
	assert.Equal(suite.T(), "worker", response["username"])
}

// TestUpdateUser_InternForbidden tests that interns cannot update profiles
func (suite *UserHandlerTestSuite) TestUpdateUser_InternForbidden() {
	intern := suite.createTestUser("worker", models.RoleIntern)

	body, _ := json.Marshal(map[string]interface{}{"email": "sneaky@example.com"})

	c, w := suite.createAuthContext("PUT", "/users/1", body, intern)
	suite.setIDParam(c, intern.ID)

	suite.handler.UpdateUser(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestDeleteUser_Cascades tests the ownership rules on user deletion: owned
// tasks and attendance go, authored assignments survive with the field cleared
func (suite *UserHandlerTestSuite) TestDeleteUser_Cascades() {
	supervisor := suite.createTestUser("boss", models.RoleSupervisor)
	intern := suite.createTestUser("worker", models.RoleIntern)

	assigned := &models.Task{Title: "Assigned", AssignedToID: &intern.ID, AssignedByID: &supervisor.ID}
	suite.db.Create(assigned)
	authored := &models.Task{Title: "Authored", AssignedToID: &supervisor.ID, AssignedByID: &intern.ID}
	suite.db.Create(authored)
	suite.db.Create(&models.Attendance{UserID: intern.ID, Status: models.StatusPresent})
	suite.db.Create(&models.AuthToken{Key: "deadbeef", UserID: intern.ID})

	c, w := suite.createAuthContext("DELETE", "/users/2", nil, supervisor)
	suite.setIDParam(c, intern.ID)

	suite.handler.DeleteUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var taskCount int64
	suite.db.Model(&models.Task{}).Where("assigned_to_id = ?", intern.ID).Count(&taskCount)
	assert.Equal(suite.T(), int64(0), taskCount)

	var survivor models.Task
	err := suite.db.First(&survivor, authored.ID).Error
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), survivor.AssignedByID)

	var attCount int64
	suite.db.Model(&models.Attendance{}).Where("user_id = ?", intern.ID).Count(&attCount)
	assert.Equal(suite.T(), int64(0), attCount)

	var tokenCount int64
	suite.db.Model(&models.AuthToken{}).Where("user_id = ?", intern.ID).Count(&tokenCount)
	assert.Equal(suite.T(), int64(0), tokenCount)
}

// TestDeleteUser_InternForbidden tests that interns cannot delete profiles
func (suite *UserHandlerTestSuite) TestDeleteUser_InternForbidden() {
	suite.createTestUser("boss", models.RoleSupervisor)
	intern := suite.createTestUser("worker", models.RoleIntern)

	c, w := suite.createAuthContext("DELETE", "/users/1", nil, intern)
	suite.setIDParam(c, 1)

	suite.handler.DeleteUser(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestSuite runs the test suite
func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
