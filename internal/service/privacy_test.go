package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/privacy"
	"github.com/socialite-app/backend/internal/types"
)

func TestPrivacyService_GetOrCreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	user := createUser(t, db, "alice")

	settings, err := svc.GetOrCreate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, privacy.VisibilityPublic, settings.ProfileVisibility)
	assert.Equal(t, privacy.VisibilityFriends, settings.DefaultPostVisibility)
	assert.Equal(t, privacy.VisibilityOnlyMe, settings.SectionLevel(privacy.SectionContactInfo))

	// A second call returns the same record, not a new one.
	again, err := svc.GetOrCreate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.PrivacySettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPrivacyService_GetOrCreateConcurrentFirstRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	user := createUser(t, db, "alice")

	// All readers race on the first create; the unique index on user_id
	// serializes them and the losers retry as a lookup.
	const readers = 8
	var wg sync.WaitGroup
	errs := make(chan error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetOrCreate(context.Background(), user.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.PrivacySettings{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPrivacyService_SnapshotDoesNotPersist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	user := createUser(t, db, "alice")

	snapshot, err := svc.Snapshot(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, privacy.VisibilityPublic, snapshot.ProfileVisibility)

	var count int64
	require.NoError(t, db.Model(&models.PrivacySettings{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPrivacyService_UpdateValidatesBeforeWriting(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	user := createUser(t, db, "alice")

	bad := "EVERYONE"
	_, err := svc.Update(context.Background(), user.ID, &types.UpdatePrivacySettingsRequest{
		ProfileVisibility: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidVisibility)

	// Nothing was created by the failed update.
	var count int64
	require.NoError(t, db.Model(&models.PrivacySettings{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPrivacyService_UpdateMergesSectionMap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	user := createUser(t, db, "alice")

	_, err := svc.Update(context.Background(), user.ID, &types.UpdatePrivacySettingsRequest{
		SectionVisibility: map[string]string{privacy.SectionEducation: "PUBLIC"},
	})
	require.NoError(t, err)

	settings, err := svc.GetOrCreate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, privacy.VisibilityPublic, settings.SectionLevel(privacy.SectionEducation))
	assert.Equal(t, privacy.VisibilityOnlyMe, settings.SectionLevel(privacy.SectionContactInfo))
}

func TestPrivacyService_BlockSemantics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	assert.ErrorIs(t, svc.Block(context.Background(), alice.ID, alice.ID, ""), ErrSelfBlock)

	require.NoError(t, svc.Block(context.Background(), alice.ID, bob.ID, "spam"))
	blocked, err := svc.IsBlocked(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	// The block is one-directional in storage.
	blocked, err = svc.IsBlocked(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, blocked)

	// Re-blocking overwrites instead of failing.
	require.NoError(t, svc.Block(context.Background(), alice.ID, bob.ID, "still spam"))

	require.NoError(t, svc.Unblock(context.Background(), alice.ID, bob.ID))
	assert.ErrorIs(t, svc.Unblock(context.Background(), alice.ID, bob.ID), ErrNotBlocked)
}

func TestPrivacyService_BlockUnknownTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	alice := createUser(t, db, "alice")

	err := svc.Block(context.Background(), alice.ID, uuid.New(), "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPrivacyService_IsBlockedWithoutSettings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPrivacyService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	blocked, err := svc.IsBlocked(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}
