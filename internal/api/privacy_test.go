package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/types"
)

func TestGetPrivacySettings_Defaults(t *testing.T) {
	db := SetupTestDB(t)
	_, token := CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodGet, "/api/v1/privacy", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.PrivacySettings
	require.NoError(t, decodeBody(w, &settings))
	assert.Equal(t, "PUBLIC", string(settings.ProfileVisibility))
	assert.Equal(t, "FRIENDS", string(settings.DefaultPostVisibility))
	assert.Equal(t, "ONLY_ME", string(settings.SectionVisibility["CONTACT_INFO"]))
	assert.Equal(t, "PUBLIC", string(settings.SectionVisibility["BASIC_INFO"]))
	assert.True(t, settings.AllowFriendRequests)
}

func TestUpdatePrivacySettings_MergesSections(t *testing.T) {
	db := SetupTestDB(t)
	_, token := CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPut, "/api/v1/privacy", types.UpdatePrivacySettingsRequest{
		SectionVisibility: map[string]string{"EDUCATION": "PUBLIC"},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.PrivacySettings
	require.NoError(t, decodeBody(w, &settings))
	assert.Equal(t, "PUBLIC", string(settings.SectionVisibility["EDUCATION"]))
	// Untouched sections keep their previous levels.
	assert.Equal(t, "ONLY_ME", string(settings.SectionVisibility["CONTACT_INFO"]))
}

func TestUpdatePrivacySettings_InvalidLevelRejected(t *testing.T) {
	db := SetupTestDB(t)
	_, token := CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPut, "/api/v1/privacy", types.UpdatePrivacySettingsRequest{
		ProfileVisibility: strPtr("EVERYONE"),
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequest(db.Router, http.MethodPut, "/api/v1/privacy", types.UpdatePrivacySettingsRequest{
		SectionVisibility: map[string]string{"EDUCATION": "bogus"},
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlockUser_SeversConnection(t *testing.T) {
	db := SetupTestDB(t)
	alice, aliceToken := CreateTestUser(t, db, "alice")
	bob, bobToken := CreateTestUser(t, db, "bob")
	mutualFollow(t, db, alice, bob)

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/bob/block", types.BlockUserRequest{
		Reason: "spam",
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	// Bob still resolves the profile but is treated as a stranger.
	w = PerformRequest(db.Router, http.MethodGet, "/api/v1/users/alice/profile", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var view types.ProfileView
	require.NoError(t, decodeBody(w, &view))
	assert.False(t, view.IsConnected)
}

func TestBlockUser_SelfBlockRejected(t *testing.T) {
	db := SetupTestDB(t)
	_, token := CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/alice/block", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlockUser_UnknownTarget(t *testing.T) {
	db := SetupTestDB(t)
	_, token := CreateTestUser(t, db, "alice")

	w := PerformRequest(db.Router, http.MethodPost, "/api/v1/users/nobody/block", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnblockUser(t *testing.T) {
	db := SetupTestDB(t)
	alice, aliceToken := CreateTestUser(t, db, "alice")
	bob, _ := CreateTestUser(t, db, "bob")

	require.NoError(t, db.Privacy.Block(context.Background(), alice.ID, bob.ID, ""))

	w := PerformRequest(db.Router, http.MethodDelete, "/api/v1/users/bob/block", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	blocked, err := db.Privacy.IsBlocked(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, blocked)

	// Unblocking again fails: bob is no longer on the list.
	w = PerformRequest(db.Router, http.MethodDelete, "/api/v1/users/bob/block", nil, aliceToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
