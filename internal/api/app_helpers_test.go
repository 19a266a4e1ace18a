package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/db"
	"github.com/terraincognita07/sitelog/internal/metrics"
	"github.com/terraincognita07/sitelog/internal/models"
	"github.com/terraincognita07/sitelog/internal/storage"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	repos    *db.Repositories
	recorder *metrics.Recorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tempDir := t.TempDir()
	database, err := db.OpenSQLite(filepath.Join(tempDir, "sitelog-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	uploads, err := storage.NewLocalUploads(filepath.Join(tempDir, "uploads"), "/uploads", 1<<20)
	if err != nil {
		t.Fatalf("init uploads: %v", err)
	}

	repos := db.NewRepositories(database)
	recorder := metrics.NewRecorder()
	handler, err := NewHandler(testSecretKey, time.UTC, false, Dependencies{
		Repositories: repos,
		Uploads:      uploads,
		Recorder:     recorder,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(recorder.Middleware())
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, database: database, repos: repos, recorder: recorder}
}

func (env *testApp) user(t *testing.T, name string, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, PasswordHash: "external", Role: models.RoleUser}
	if err := env.repos.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (env *testApp) project(t *testing.T, name string, ownerID uint) models.Project {
	t.Helper()

	project := models.Project{Name: name, Active: true, OwnerUserID: &ownerID}
	if err := env.repos.Projects.Create(&project); err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func (env *testApp) member(t *testing.T, projectID uint, userID uint, role string) {
	t.Helper()

	joinedAt := time.Now()
	if err := env.repos.Members.Create(&models.ProjectMember{ProjectID: projectID, UserID: userID, Role: role, JoinedAt: &joinedAt}); err != nil {
		t.Fatalf("create membership: %v", err)
	}
}

// bearer signs a session token the way a successful login would.
func (env *testApp) bearer(t *testing.T, user models.User) string {
	t.Helper()

	token, err := env.handler.buildToken(&user, time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return "Bearer " + token
}

func (env *testApp) do(t *testing.T, method string, path string, auth string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		request.Header.Set("Authorization", auth)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testApp) countRows(t *testing.T, table string, where string, args ...any) int64 {
	t.Helper()

	var count int64
	if err := env.database.Table(table).Where(where, args...).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var value T
	if err := json.NewDecoder(response.Body).Decode(&value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return value
}

type resultBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func expectResult(t *testing.T, response *http.Response, status int, wantError string) {
	t.Helper()

	if response.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, response.StatusCode)
	}
	result := decodeJSON[resultBody](t, response)
	if result.Success != (wantError == "") {
		t.Fatalf("expected success=%t, got %#v", wantError == "", result)
	}
	if result.Error != wantError {
		t.Fatalf("expected error %q, got %q", wantError, result.Error)
	}
}
