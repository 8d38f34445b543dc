package userController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"elms/config"
	"elms/database"
	"elms/middleware"
	"elms/models"
	"elms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey:                   "test-secret",
		SaltRound:                4,
		AccessTokenExpireMinutes: 30,
		RefreshTokenExpireDays:   30,
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	os.Exit(m.Run())
}

func setupApp() *fiber.App {
	app := fiber.New()
	userRoutes.SetupUserRoutes(app, config.AppConfig)
	return app
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", DisplayName: "Account Owner", IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateAccessToken(user.ID, user.Email, config.AppConfig)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestMeReturnsOwnAccount(t *testing.T) {
	app := setupApp()
	created, token := createUser(t, "users-me@test.local")

	code, resp := doRequest(t, app, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, code, resp.Message)

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "users-me@test.local", user.Email)
	assert.NotContains(t, string(resp.Data), "password_hash")
}

func TestMeRequiresAuthentication(t *testing.T) {
	app := setupApp()

	code, _ := doRequest(t, app, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMeRejectsDeactivatedAccount(t *testing.T) {
	app := setupApp()
	user, token := createUser(t, "users-me-inactive@test.local")
	require.NoError(t, database.Database.Db.Model(&user).Update("is_active", false).Error)

	code, _ := doRequest(t, app, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGetUserByIDStillResolves(t *testing.T) {
	app := setupApp()
	target, _ := createUser(t, "users-by-id@test.local")
	_, token := createUser(t, "users-by-id-caller@test.local")

	code, resp := doRequest(t, app, http.MethodGet, "/users/"+itoa(target.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	assert.Equal(t, target.ID, user.ID)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "users-admin@test.local")

	code, resp := doRequest(t, app, http.MethodPost, "/users/", token, fiber.Map{
		"email":        "users-created@test.local",
		"password":     "password123",
		"display_name": "Created User",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)

	code, resp = doRequest(t, app, http.MethodPost, "/users/", token, fiber.Map{
		"email":        "users-created@test.local",
		"password":     "password123",
		"display_name": "Created Again",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User with this email already exists!", resp.Message)
}

func TestDeleteUserDeactivatesAndClearsRefreshToken(t *testing.T) {
	app := setupApp()
	target, _ := createUser(t, "users-delete@test.local")
	require.NoError(t, database.Database.Db.Model(&target).Update("refresh_token", "stored-token").Error)
	_, token := createUser(t, "users-delete-caller@test.local")

	code, _ := doRequest(t, app, http.MethodDelete, "/users/"+itoa(target.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	var reloaded models.User
	require.NoError(t, database.Database.Db.First(&reloaded, target.ID).Error)
	assert.False(t, reloaded.IsActive)
	assert.Empty(t, reloaded.RefreshToken)
}

func itoa(id uint) string {
	return fmt.Sprint(id)
}
