package learningController_test

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
	learningModels "elms/models/learning"
	"elms/routers/learningRoutes"

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
	learningRoutes.SetupLearningRoutes(app, config.AppConfig)
	return app
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", DisplayName: "Learner", IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateAccessToken(user.ID, user.Email, config.AppConfig)
	require.NoError(t, err)
	return user, token
}

func createContent(t *testing.T, title string) contentModels.Content {
	t.Helper()

	content := contentModels.Content{Title: title, ContentType: "video", IsPublished: true, CreatedBy: 1}
	require.NoError(t, database.Database.Db.Create(&content).Error)
	return content
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

func updateProgress(t *testing.T, app *fiber.App, token string, contentID uint, percentage float64, minutes int) apiResponse {
	t.Helper()

	code, resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/learning/progress/%d", contentID), token, fiber.Map{
		"progress_percentage": percentage,
		"time_spent_minutes":  minutes,
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	return resp
}

func TestProgressUpsertAccumulatesTime(t *testing.T) {
	app := setupApp()
	user, token := createUser(t, "progress-upsert@test.local")
	content := createContent(t, "Intro Video")

	updateProgress(t, app, token, content.ID, 30, 10)
	updateProgress(t, app, token, content.ID, 55, 15)

	var rows []learningModels.LearningProgress
	require.NoError(t, database.Database.Db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 55.0, rows[0].ProgressPercentage)
	assert.Equal(t, 25, rows[0].TimeSpentMinutes)
	assert.False(t, rows[0].IsCompleted)
}

func TestProgressIsCappedAtHundred(t *testing.T) {
	app := setupApp()
	user, token := createUser(t, "progress-cap@test.local")
	content := createContent(t, "Long Video")

	updateProgress(t, app, token, content.ID, 150, 5)

	var progress learningModels.LearningProgress
	require.NoError(t, database.Database.Db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).First(&progress).Error)
	assert.Equal(t, 100.0, progress.ProgressPercentage)
	assert.True(t, progress.IsCompleted)
}

func TestCompletionIsAOneWayLatch(t *testing.T) {
	app := setupApp()
	user, token := createUser(t, "progress-latch@test.local")
	content := createContent(t, "Latched Video")

	updateProgress(t, app, token, content.ID, 100, 5)

	var progress learningModels.LearningProgress
	db := database.Database.Db
	require.NoError(t, db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).First(&progress).Error)
	require.True(t, progress.IsCompleted)
	require.NotNil(t, progress.CompletedAt)
	firstCompletedAt := *progress.CompletedAt

	// Dropping back below 100 keeps the completion flag and timestamp
	updateProgress(t, app, token, content.ID, 40, 5)
	require.NoError(t, db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).First(&progress).Error)
	assert.Equal(t, 40.0, progress.ProgressPercentage)
	assert.True(t, progress.IsCompleted)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, firstCompletedAt.Unix(), progress.CompletedAt.Unix())
}

func TestNegativeProgressIsRejected(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "progress-negative@test.local")
	content := createContent(t, "Strict Video")

	code, _ := doRequest(t, app, http.MethodPut, fmt.Sprintf("/learning/progress/%d", content.ID), token, fiber.Map{
		"progress_percentage": -5,
		"time_spent_minutes":  0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestProgressOnUnknownContent(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "progress-unknown@test.local")

	code, _ := doRequest(t, app, http.MethodPut, "/learning/progress/999999", token, fiber.Map{
		"progress_percentage": 10,
		"time_spent_minutes":  1,
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetContentProgressReturnsZeroShapeWhenAbsent(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "progress-absent@test.local")
	content := createContent(t, "Untouched Video")

	code, resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/learning/progress/%d", content.ID), token, nil)
	require.Equal(t, http.StatusOK, code)

	var data struct {
		ProgressPercentage float64 `json:"progress_percentage"`
		TimeSpentMinutes   int     `json:"time_spent_minutes"`
		IsCompleted        bool    `json:"is_completed"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 0.0, data.ProgressPercentage)
	assert.Equal(t, 0, data.TimeSpentMinutes)
	assert.False(t, data.IsCompleted)
}

func TestProgressSummary(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "progress-summary@test.local")
	first := createContent(t, "Summary Video A")
	second := createContent(t, "Summary Video B")

	updateProgress(t, app, token, first.ID, 100, 20)
	updateProgress(t, app, token, second.ID, 50, 10)

	code, resp := doRequest(t, app, http.MethodGet, "/learning/progress/summary", token, nil)
	require.Equal(t, http.StatusOK, code)

	var summary struct {
		ContentsStarted       int     `json:"contents_started"`
		ContentsCompleted     int     `json:"contents_completed"`
		TotalTimeSpentMinutes int     `json:"total_time_spent_minutes"`
		AverageProgress       float64 `json:"average_progress"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	assert.Equal(t, 2, summary.ContentsStarted)
	assert.Equal(t, 1, summary.ContentsCompleted)
	assert.Equal(t, 30, summary.TotalTimeSpentMinutes)
	assert.Equal(t, 75.0, summary.AverageProgress)
}

func TestCreateAssignmentRequiresExistingTargets(t *testing.T) {
	app := setupApp()
	admin, token := createUser(t, "assignment-admin@test.local")
	content := createContent(t, "Assigned Video")

	code, _ := doRequest(t, app, http.MethodPost, "/learning/assignments", token, fiber.Map{
		"user_id":    999999,
		"content_id": content.ID,
	})
	assert.Equal(t, http.StatusNotFound, code)

	learner, _ := createUser(t, "assignment-learner@test.local")
	code, resp := doRequest(t, app, http.MethodPost, "/learning/assignments", token, fiber.Map{
		"user_id":      learner.ID,
		"content_id":   content.ID,
		"is_mandatory": true,
		"notes":        "Finish before Friday",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)

	var data struct {
		AssignmentID uint   `json:"assignment_id"`
		AssignedBy   uint   `json:"assigned_by"`
		ContentTitle string `json:"content_title"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, admin.ID, data.AssignedBy)
	assert.Equal(t, "Assigned Video", data.ContentTitle)
}

func TestLearningPathProgressRollup(t *testing.T) {
	app := setupApp()
	_, token := createUser(t, "path-learner@test.local")
	first := createContent(t, "Path Step 1")
	second := createContent(t, "Path Step 2")

	code, resp := doRequest(t, app, http.MethodPost, "/learning/paths", token, fiber.Map{
		"title":       "Onboarding Path",
		"content_ids": []uint{first.ID, second.ID},
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)

	var created struct {
		PathID uint `json:"path_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	updateProgress(t, app, token, first.ID, 100, 10)

	code, resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/learning/paths/%d/progress", created.PathID), token, nil)
	require.Equal(t, http.StatusOK, code)

	var rollup struct {
		RequiredTotal     int     `json:"required_total"`
		RequiredCompleted int     `json:"required_completed"`
		CompletionRate    float64 `json:"completion_rate"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &rollup))
	assert.Equal(t, 2, rollup.RequiredTotal)
	assert.Equal(t, 1, rollup.RequiredCompleted)
	assert.Equal(t, 50.0, rollup.CompletionRate)
}
