package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/service"
	"github.com/socialite-app/backend/internal/types"
)

// TestDB holds the in-memory database, the services built on it and a router
// with every handler group registered.
type TestDB struct {
	DB      *gorm.DB
	Auth    *service.AuthService
	Privacy *service.PrivacyService
	Follow  *service.FollowService
	Profile *service.ProfileService
	Router  *gin.Engine
	Storage *MemoryStorage
}

// MemoryStorage keeps uploaded blobs in a map so upload paths can be asserted
// without S3.
type MemoryStorage struct {
	Files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Files: make(map[string][]byte)}
}

func (m *MemoryStorage) Store(_ context.Context, data []byte, dir, name string) (string, error) {
	key := path.Join(dir, name)
	m.Files[key] = data
	return key, nil
}

func (m *MemoryStorage) Delete(_ context.Context, p string) error {
	delete(m.Files, p)
	return nil
}

// SetupTestDB creates an isolated in-memory database, migrates the schema and
// wires the full service and handler stack on top of it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named shared-cache database keeps every pooled connection on the
	// same data while staying private to this test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Profile{},
		&models.Education{},
		&models.WorkExperience{},
		&models.PrivacySettings{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	storage := NewMemoryStorage()
	authService := service.NewAuthService(db, "test-secret", nil, nil)
	privacyService := service.NewPrivacyService(db)
	followService := service.NewFollowService(db)
	profileService := service.NewProfileService(db, storage, followService, privacyService)

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewProfileHandler(profileService).RegisterRoutes(v1, authService, db)
	NewPrivacyHandler(privacyService).RegisterRoutes(v1, authService)
	NewFollowHandler(followService).RegisterRoutes(v1, authService)

	return &TestDB{
		DB:      db,
		Auth:    authService,
		Privacy: privacyService,
		Follow:  followService,
		Profile: profileService,
		Router:  router,
		Storage: storage,
	}
}

// CreateTestUser creates a user with a known password and returns the record
// and a valid token for it.
func CreateTestUser(t *testing.T, db *TestDB, username string) (*models.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         fmt.Sprintf("%s@example.com", username),
		PasswordHash:  string(hashedPassword),
		FirstName:     "Test",
		LastName:      "User",
		EmailVerified: true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := db.Auth.GenerateToken(&types.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return &user, token
}

// decodeBody unmarshals a recorded JSON response into out.
func decodeBody(w *httptest.ResponseRecorder, out interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), out)
}

// PerformRequest makes an HTTP request against the test router. An empty
// token leaves the Authorization header off.
func PerformRequest(router *gin.Engine, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, target, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}
