package contentController_test

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
	contentModels "elms/models/content"
	"elms/routers/contentRoutes"

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
	contentRoutes.SetupContentRoutes(app, config.AppConfig)
	return app
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", DisplayName: "Author", IsActive: true}
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

func TestCreateCategoryAndChildren(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "category-author@test.local")

	code, resp := doRequest(t, app, http.MethodPost, "/contents/categories/", token, fiber.Map{
		"name":        "Engineering",
		"description": "Technical trainings",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)

	var parent contentModels.Category
	require.NoError(t, json.Unmarshal(resp.Data, &parent))
	assert.True(t, parent.IsActive)

	code, resp = doRequest(t, app, http.MethodPost, "/contents/categories/", token, fiber.Map{
		"name":      "Backend",
		"parent_id": parent.ID,
	})
	require.Equal(t, http.StatusCreated, code)

	// Unknown parent is rejected
	code, _ = doRequest(t, app, http.MethodPost, "/contents/categories/", token, fiber.Map{
		"name":      "Orphan",
		"parent_id": 999999,
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteCategoryIsRefusedWhileReferenced(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "category-delete@test.local")
	db := database.Database.Db

	parent := contentModels.Category{Name: "Parent", IsActive: true}
	require.NoError(t, db.Create(&parent).Error)
	child := contentModels.Category{Name: "Child", ParentID: &parent.ID, IsActive: true}
	require.NoError(t, db.Create(&child).Error)

	code, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/contents/categories/%d", parent.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Deactivate the child, then attach a published content
	require.NoError(t, db.Model(&child).Update("is_active", false).Error)
	content := contentModels.Content{Title: "Published Item", ContentType: "video", CategoryID: &parent.ID, IsPublished: true, CreatedBy: 1}
	require.NoError(t, db.Create(&content).Error)

	code, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/contents/categories/%d", parent.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Unpublish the content and the delete goes through as a soft delete
	require.NoError(t, db.Model(&content).Update("is_published", false).Error)
	code, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/contents/categories/%d", parent.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	var reloaded contentModels.Category
	require.NoError(t, db.First(&reloaded, parent.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestContentLifecycle(t *testing.T) {
	app := setupApp()
	user, token := createUser(t, "content-author@test.local")

	code, resp := doRequest(t, app, http.MethodPost, "/contents/", token, fiber.Map{
		"title":            "Security Basics",
		"description":      "Mandatory training",
		"content_type":     "video",
		"duration_minutes": 45,
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)

	var content contentModels.Content
	require.NoError(t, json.Unmarshal(resp.Data, &content))
	assert.Equal(t, user.ID, content.CreatedBy)
	assert.False(t, content.IsPublished)

	code, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/contents/%d/publish", content.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/contents/%d", content.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &content))
	assert.True(t, content.IsPublished)

	code, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/contents/%d/unpublish", content.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/contents/%d", content.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/contents/%d", content.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateContentRejectsUnknownType(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "content-type@test.local")

	code, _ := doRequest(t, app, http.MethodPost, "/contents/", token, fiber.Map{
		"title":        "Mystery Item",
		"content_type": "hologram",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestContentListFilters(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "content-filter@test.local")
	db := database.Database.Db

	category := contentModels.Category{Name: "Filtered", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	published := contentModels.Content{Title: "Filter Published", ContentType: "document", CategoryID: &category.ID, IsPublished: true, CreatedBy: 1}
	require.NoError(t, db.Create(&published).Error)
	draft := contentModels.Content{Title: "Filter Draft", ContentType: "document", CategoryID: &category.ID, CreatedBy: 1}
	require.NoError(t, db.Create(&draft).Error)

	code, resp := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/contents/?category_id=%d&is_published=true", category.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Contents []contentModels.Content `json:"contents"`
		Total    int64                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(1), data.Total)
	require.Len(t, data.Contents, 1)
	assert.Equal(t, "Filter Published", data.Contents[0].Title)
}
