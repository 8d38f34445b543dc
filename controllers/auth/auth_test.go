package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"elms/config"
	"elms/database"
	"elms/models"
	"elms/routers/authRoutes"

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
	authRoutes.SetupAuthRoutes(app, config.AppConfig)
	return app
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

func register(t *testing.T, app *fiber.App, email string) {
	t.Helper()

	code, resp := doRequest(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"email":        email,
		"password":     "password123",
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func login(t *testing.T, app *fiber.App, email string) tokenPair {
	t.Helper()

	code, resp := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)

	var tokens tokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))
	return tokens
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp()

	register(t, app, "login@test.local")
	tokens := login(t, app, "login@test.local")

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.Equal(t, 30*60, tokens.ExpiresIn)
}

func TestRegisterDuplicateEmailIsRejected(t *testing.T) {
	app := setupApp()

	register(t, app, "duplicate@test.local")

	code, resp := doRequest(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"email":        "duplicate@test.local",
		"password":     "password123",
		"display_name": "Second User",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User with this email already exists!", resp.Message)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	app := setupApp()

	code, _ := doRequest(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"email":        "not-an-email",
		"password":     "short",
		"display_name": "X",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestLoginWithWrongPassword(t *testing.T) {
	app := setupApp()

	register(t, app, "wrong-password@test.local")

	code, resp := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "wrong-password@test.local",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Incorrect email or password!", resp.Message)
}

func TestInactiveUserCannotLogin(t *testing.T) {
	app := setupApp()

	register(t, app, "inactive@test.local")
	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("email = ?", "inactive@test.local").
		Update("is_active", false).Error)

	code, resp := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "inactive@test.local",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Inactive user!", resp.Message)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	app := setupApp()

	register(t, app, "refresh@test.local")
	tokens := login(t, app, "refresh@test.local")

	code, resp := doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, code)

	var refreshed tokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAccessTokenCannotBeUsedAsRefreshToken(t *testing.T) {
	app := setupApp()

	register(t, app, "token-type@test.local")
	tokens := login(t, app, "token-type@test.local")

	code, _ := doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	app := setupApp()

	register(t, app, "logout@test.local")
	tokens := login(t, app, "logout@test.local")

	code, _ := doRequest(t, app, http.MethodPost, "/auth/logout", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestNewLoginInvalidatesPreviousRefreshToken(t *testing.T) {
	app := setupApp()

	register(t, app, "relogin@test.local")
	first := login(t, app, "relogin@test.local")
	second := login(t, app, "relogin@test.local")

	code, _ := doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": first.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": second.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestChangePasswordForcesRelogin(t *testing.T) {
	app := setupApp()

	register(t, app, "change-password@test.local")
	tokens := login(t, app, "change-password@test.local")

	code, resp := doRequest(t, app, http.MethodPut, "/auth/change/password", tokens.AccessToken, fiber.Map{
		"current_password": "wrong-password",
		"new_password":     "newPassword123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Current password is incorrect!", resp.Message)

	code, _ = doRequest(t, app, http.MethodPut, "/auth/change/password", tokens.AccessToken, fiber.Map{
		"current_password": "password123",
		"new_password":     "newPassword123",
	})
	require.Equal(t, http.StatusOK, code)

	// The old refresh token is gone
	code, _ = doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	// The old password no longer works
	code, _ = doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "change-password@test.local",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestChangePasswordRequiresAuthBeforeValidation(t *testing.T) {
	app := setupApp()

	// Without a token the response is 401, not a field-validation error
	code, _ := doRequest(t, app, http.MethodPut, "/auth/change/password", "", fiber.Map{
		"current_password": "",
		"new_password":     "short",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMeReturnsCallerAccount(t *testing.T) {
	app := setupApp()

	register(t, app, "me@test.local")
	tokens := login(t, app, "me@test.local")

	code, resp := doRequest(t, app, http.MethodGet, "/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	assert.Equal(t, "me@test.local", user.Email)

	// The password hash must never appear in a response
	assert.NotContains(t, string(resp.Data), "password_hash")
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	app := setupApp()

	code, _ := doRequest(t, app, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
