package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Username      string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string         `gorm:"not null" json:"-"`
	FirstName     string         `gorm:"size:100" json:"first_name"`
	LastName      string         `gorm:"size:100" json:"last_name"`
	Avatar        string         `gorm:"size:255" json:"avatar"`
	Bio           string         `gorm:"type:text" json:"bio"`
	EmailVerified bool           `gorm:"not null;default:false" json:"email_verified"`
}

// Follow is one edge of the follow graph. A connection (friendship) exists
// when edges exist in both directions.
type Follow struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	FollowerID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_edge" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
