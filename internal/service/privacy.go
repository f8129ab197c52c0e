package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/privacy"
	"github.com/socialite-app/backend/internal/types"
)

// PrivacyService owns the per-user privacy settings record and the block
// list.
type PrivacyService struct {
	db *gorm.DB
}

var _ Blocklist = (*PrivacyService)(nil)

// NewPrivacyService creates a new PrivacyService instance
func NewPrivacyService(db *gorm.DB) *PrivacyService {
	return &PrivacyService{db: db}
}

// GetOrCreate returns the user's settings, creating a default record on first
// access. The unique index on user_id serializes concurrent first accesses:
// the losing insert falls back to a lookup instead of producing a duplicate.
func (s *PrivacyService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error) {
	var settings models.PrivacySettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load privacy settings: %w", err)
	}

	settings = models.NewDefaultPrivacySettings(userID)
	if createErr := s.db.WithContext(ctx).Create(&settings).Error; createErr != nil {
		// Another request created the record first; re-read it.
		var existing models.PrivacySettings
		if lookupErr := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create privacy settings: %w", createErr)
	}
	return &settings, nil
}

// Snapshot returns the user's settings without persisting anything. Absent
// settings yield the documented defaults, so read paths never trigger a
// write.
func (s *PrivacyService) Snapshot(ctx context.Context, userID uuid.UUID) (models.PrivacySettings, error) {
	var settings models.PrivacySettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewDefaultPrivacySettings(userID), nil
	}
	if err != nil {
		return models.PrivacySettings{}, fmt.Errorf("failed to load privacy settings: %w", err)
	}
	return settings, nil
}

// Update applies a partial patch. Each provided field is validated before
// anything is written; the section map is merged per key, never replaced.
func (s *PrivacyService) Update(ctx context.Context, userID uuid.UUID, req *types.UpdatePrivacySettingsRequest) (*models.PrivacySettings, error) {
	if err := validateVisibilityPtr(req.DefaultPostVisibility); err != nil {
		return nil, err
	}
	if err := validateVisibilityPtr(req.ProfileVisibility); err != nil {
		return nil, err
	}
	if err := validateVisibilityPtr(req.FriendListVisibility); err != nil {
		return nil, err
	}
	for section, level := range req.SectionVisibility {
		if !privacy.Visibility(level).Valid() {
			return nil, fmt.Errorf("%w: %q for section %s", ErrInvalidVisibility, level, section)
		}
	}

	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DefaultPostVisibility != nil {
		settings.DefaultPostVisibility = privacy.Visibility(*req.DefaultPostVisibility)
	}
	if req.ProfileVisibility != nil {
		settings.ProfileVisibility = privacy.Visibility(*req.ProfileVisibility)
	}
	if req.FriendListVisibility != nil {
		settings.FriendListVisibility = privacy.Visibility(*req.FriendListVisibility)
	}
	if len(req.SectionVisibility) > 0 {
		if settings.SectionVisibility == nil {
			settings.SectionVisibility = models.SectionVisibilityMap{}
		}
		for section, level := range req.SectionVisibility {
			settings.SectionVisibility[section] = privacy.Visibility(level)
		}
	}
	if req.AllowSearchEngines != nil {
		settings.AllowSearchEngines = *req.AllowSearchEngines
	}
	if req.ShowInFriendSuggestions != nil {
		settings.ShowInFriendSuggestions = *req.ShowInFriendSuggestions
	}
	if req.AllowFriendRequests != nil {
		settings.AllowFriendRequests = *req.AllowFriendRequests
	}
	if req.AllowDataForRecommendations != nil {
		settings.AllowDataForRecommendations = *req.AllowDataForRecommendations
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save privacy settings: %w", err)
	}
	return settings, nil
}

// Block adds targetID to the user's block list. Blocking again overwrites the
// entry with a fresh reason and timestamp.
func (s *PrivacyService) Block(ctx context.Context, userID, targetID uuid.UUID, reason string) error {
	if userID == targetID {
		return ErrSelfBlock
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}

	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if settings.BlockedUsers == nil {
		settings.BlockedUsers = models.BlockedUserMap{}
	}
	settings.BlockedUsers[targetID.String()] = models.BlockedUserInfo{
		UserID:    targetID.String(),
		Reason:    reason,
		BlockedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save block list: %w", err)
	}
	return nil
}

// BlockUser blocks a user identified by username.
func (s *PrivacyService) BlockUser(ctx context.Context, userID uuid.UUID, username, reason string) error {
	target, err := userByUsername(ctx, s.db, username)
	if err != nil {
		return err
	}
	return s.Block(ctx, userID, target.ID, reason)
}

// UnblockUser unblocks a user identified by username.
func (s *PrivacyService) UnblockUser(ctx context.Context, userID uuid.UUID, username string) error {
	target, err := userByUsername(ctx, s.db, username)
	if err != nil {
		return err
	}
	return s.Unblock(ctx, userID, target.ID)
}

// Unblock removes targetID from the block list, failing when it was never
// there.
func (s *PrivacyService) Unblock(ctx context.Context, userID, targetID uuid.UUID) error {
	var settings models.PrivacySettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotBlocked
	}
	if err != nil {
		return fmt.Errorf("failed to load privacy settings: %w", err)
	}

	if _, ok := settings.BlockedUsers[targetID.String()]; !ok {
		return ErrNotBlocked
	}
	delete(settings.BlockedUsers, targetID.String())

	if err := s.db.WithContext(ctx).Save(&settings).Error; err != nil {
		return fmt.Errorf("failed to save block list: %w", err)
	}
	return nil
}

// IsBlocked reports whether userID has blocked targetID. A missing settings
// record means nothing has been blocked.
func (s *PrivacyService) IsBlocked(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	var settings models.PrivacySettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load privacy settings: %w", err)
	}
	_, blocked := settings.BlockedUsers[targetID.String()]
	return blocked, nil
}

func validateVisibilityPtr(v *string) error {
	if v == nil {
		return nil
	}
	if !privacy.Visibility(*v).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVisibility, *v)
	}
	return nil
}
