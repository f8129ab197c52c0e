package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/socialite-app/backend/internal/privacy"
)

// BlockedUserInfo records one block-list entry.
type BlockedUserInfo struct {
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason,omitempty"`
	BlockedAt time.Time `json:"blocked_at"`
}

// BlockedUserMap stores the block list keyed by blocked user id as JSONB
type BlockedUserMap map[string]BlockedUserInfo

// Value implements the driver.Valuer interface
func (m BlockedUserMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *BlockedUserMap) Scan(value interface{}) error {
	if value == nil {
		*m = BlockedUserMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// SectionVisibilityMap stores per-section visibility levels as JSONB
type SectionVisibilityMap map[string]privacy.Visibility

// Value implements the driver.Valuer interface
func (m SectionVisibilityMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *SectionVisibilityMap) Scan(value interface{}) error {
	if value == nil {
		*m = SectionVisibilityMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// PrivacySettings holds one user's visibility configuration and block list.
// Created lazily on first access; never deleted.
type PrivacySettings struct {
	ID                    uuid.UUID            `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID                uuid.UUID            `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DefaultPostVisibility privacy.Visibility   `gorm:"size:20;not null;default:'FRIENDS'" json:"default_post_visibility"`
	ProfileVisibility     privacy.Visibility   `gorm:"size:20;not null;default:'PUBLIC'" json:"profile_visibility"`
	FriendListVisibility  privacy.Visibility   `gorm:"size:20;not null;default:'FRIENDS'" json:"friend_list_visibility"`
	SectionVisibility     SectionVisibilityMap `gorm:"type:jsonb;not null;default:'{}'" json:"section_visibility"`

	AllowSearchEngines          bool `gorm:"not null;default:true" json:"allow_search_engines"`
	ShowInFriendSuggestions     bool `gorm:"not null;default:true" json:"show_in_friend_suggestions"`
	AllowFriendRequests         bool `gorm:"not null;default:true" json:"allow_friend_requests"`
	AllowDataForRecommendations bool `gorm:"not null;default:true" json:"allow_data_for_recommendations"`

	BlockedUsers BlockedUserMap `gorm:"type:jsonb;not null;default:'{}'" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDefaultPrivacySettings builds a fresh settings record for a user with the
// documented defaults.
func NewDefaultPrivacySettings(userID uuid.UUID) PrivacySettings {
	return PrivacySettings{
		ID:                          uuid.New(),
		UserID:                      userID,
		DefaultPostVisibility:       privacy.VisibilityFriends,
		ProfileVisibility:           privacy.VisibilityPublic,
		FriendListVisibility:        privacy.VisibilityFriends,
		SectionVisibility:           SectionVisibilityMap(privacy.DefaultSectionVisibility()),
		AllowSearchEngines:          true,
		ShowInFriendSuggestions:     true,
		AllowFriendRequests:         true,
		AllowDataForRecommendations: true,
		BlockedUsers:                BlockedUserMap{},
	}
}

// SectionLevel returns the configured level for a section, falling back to the
// creation-time default when the section was never configured.
func (p *PrivacySettings) SectionLevel(section string) privacy.Visibility {
	if level, ok := p.SectionVisibility[section]; ok {
		return level
	}
	if level, ok := privacy.DefaultSectionVisibility()[section]; ok {
		return level
	}
	return privacy.VisibilityOnlyMe
}
