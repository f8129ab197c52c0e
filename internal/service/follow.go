package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/models"
)

// FollowService maintains the follow graph and answers the connection
// predicate used by the profile aggregator.
type FollowService struct {
	db *gorm.DB
}

var _ FollowGraph = (*FollowService)(nil)

// NewFollowService creates a new FollowService instance
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow records an edge from follower to followee. Following twice is a
// no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", followeeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}

	edge := models.Follow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		// The unique edge index makes re-follows a no-op.
		var existing models.Follow
		if lookupErr := s.db.WithContext(ctx).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&existing).Error; lookupErr == nil {
			return nil
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// FollowUser follows a user identified by username.
func (s *FollowService) FollowUser(ctx context.Context, followerID uuid.UUID, username string) error {
	followee, err := userByUsername(ctx, s.db, username)
	if err != nil {
		return err
	}
	return s.Follow(ctx, followerID, followee.ID)
}

// UnfollowUser unfollows a user identified by username.
func (s *FollowService) UnfollowUser(ctx context.Context, followerID uuid.UUID, username string) error {
	followee, err := userByUsername(ctx, s.db, username)
	if err != nil {
		return err
	}
	return s.Unfollow(ctx, followerID, followee.ID)
}

// Unfollow removes the edge from follower to followee.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// IsConnected reports whether a and b follow each other. A one-way follow is
// not a connection.
func (s *FollowService) IsConnected(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == b {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check connection: %w", err)
	}
	return count == 2, nil
}

// Counts returns follower and following counts for a user.
func (s *FollowService) Counts(ctx context.Context, userID uuid.UUID) (followers, following int64, err error) {
	if err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count followers: %w", err)
	}
	if err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count following: %w", err)
	}
	return followers, following, nil
}

// IsFollowing reports a one-directional follow edge.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}
