package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialite-app/backend/internal/types"
)

func TestRegister(t *testing.T) {
	db := SetupTestDB(t)

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, decodeBody(w, &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	db := SetupTestDB(t)

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Username: "al", // below minimum length
		Email:    "not-an-email",
		Password: "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "testpassword123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, decodeBody(w, &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := SetupTestDB(t)

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoute_BadToken(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodGet, "/api/v1/users/alice/profile", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
