package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialite-app/backend/internal/types"
)

func TestFollow_OneWayIsNotConnection(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")
	_, bobToken := CreateTestUser(t, db, "bob")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/follow", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(db.Router, http.MethodGet, "/api/v1/users/alice/profile", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var view types.ProfileView
	require.NoError(t, decodeBody(w, &view))
	assert.False(t, view.IsConnected)
	assert.Equal(t, int64(1), view.FollowerCount)
}

func TestFollow_MutualFollowConnects(t *testing.T) {
	db := SetupTestDB(t)
	_, aliceToken := CreateTestUser(t, db, "alice")
	_, bobToken := CreateTestUser(t, db, "bob")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/follow", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = PerformRequest(db.Router, http.MethodPost, "/api/v1/users/bob/follow", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(db.Router, http.MethodGet, "/api/v1/users/alice/profile", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var view types.ProfileView
	require.NoError(t, decodeBody(w, &view))
	assert.True(t, view.IsConnected)
}

func TestFollow_Idempotent(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")
	_, bobToken := CreateTestUser(t, db, "bob")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/follow", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/follow", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(db.Router, http.MethodGet, "/api/v1/users/alice/profile", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var view types.ProfileView
	require.NoError(t, decodeBody(w, &view))
	assert.Equal(t, int64(1), view.FollowerCount)
}

func TestFollow_SelfFollowRejected(t *testing.T) {
	db := SetupTestDB(t)
	_, token := CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/follow", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnfollow(t *testing.T) {
	db := SetupTestDB(t)
	CreateTestUser(t, db, "alice")
	_, bobToken := CreateTestUser(t, db, "bob")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/follow", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(db.Router, http.MethodDelete, "/api/v1/users/alice/follow", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	// There is no edge left to remove.
	w = PerformRequest(db.Router, http.MethodDelete, "/api/v1/users/alice/follow", nil, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
