package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/plateful-backend/internal/database"
	"github.com/plateful/plateful-backend/internal/models"
	"github.com/plateful/plateful-backend/internal/service"
	"github.com/plateful/plateful-backend/internal/storage"
)

// TestDB holds test database and services
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	UploadDir   string
}

// SetupTestDB creates an isolated in-memory database with the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
		UploadDir:   t.TempDir(),
	}
}

// SetupTestRouter creates a router wired against a fresh test database.
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)

	imageService := service.NewImageService(storage.NewLocalStore(testDB.UploadDir))
	userHandler := NewUserHandler(testDB.AuthService)
	recipeHandler := NewRecipeHandler(service.NewRecipeService(testDB.DB), imageService, testDB.AuthService, nil)
	tagHandler := NewCatalogHandler(service.NewCatalogService[models.Tag](testDB.DB), testDB.AuthService, "tags")
	ingredientHandler := NewCatalogHandler(service.NewCatalogService[models.Ingredient](testDB.DB), testDB.AuthService, "ingredients")

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	tagHandler.RegisterRoutes(v1)
	ingredientHandler.RegisterRoutes(v1)

	return router, testDB
}

// CreateTestUserAndToken creates a test user and returns their ID and a valid token
func CreateTestUserAndToken(t *testing.T, db *TestDB) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:           userID,
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", userID.String()),
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := db.AuthService.GenerateToken(userID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return userID, token
}

// PerformRequest makes an authenticated JSON request against the router.
func PerformRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return response
}
