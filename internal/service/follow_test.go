package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

func TestFollowService_MutualFollowIsConnection(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))

	following, err := svc.IsFollowing(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	following, err = svc.IsFollowing(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	connected, err := svc.IsConnected(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, connected, "one-way follow must not connect")

	require.NoError(t, svc.Follow(context.Background(), bob.ID, alice.ID))

	connected, err = svc.IsConnected(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, connected)

	// Symmetric regardless of argument order.
	connected, err = svc.IsConnected(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestFollowService_SelfFollow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db)
	alice := createUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(context.Background(), alice.ID, alice.ID), ErrSelfFollow)

	connected, err := svc.IsConnected(context.Background(), alice.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestFollowService_FollowUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db)
	alice := createUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(context.Background(), alice.ID, uuid.New()), ErrUserNotFound)
}

func TestFollowService_FollowIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))
	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))

	followers, _, err := svc.Counts(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)
}

func TestFollowService_Unfollow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(context.Background(), alice.ID, bob.ID))
	assert.ErrorIs(t, svc.Unfollow(context.Background(), alice.ID, bob.ID), ErrEntryNotFound)
}

func TestFollowService_Counts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	require.NoError(t, svc.Follow(context.Background(), bob.ID, alice.ID))
	require.NoError(t, svc.Follow(context.Background(), carol.ID, alice.ID))
	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))

	followers, following, err := svc.Counts(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)
	assert.Equal(t, int64(1), following)
}
