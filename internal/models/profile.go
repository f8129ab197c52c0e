package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/privacy"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
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

	return json.Unmarshal(bytes, a)
}

// LifeEvent is embedded in the owning profile's life_events column. The ID is
// assigned when the event is added and never changes.
type LifeEvent struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Date        *time.Time         `json:"date,omitempty"`
	Category    string             `json:"category"`
	Visibility  privacy.Visibility `json:"visibility"`
}

// LifeEventList stores the ordered life events as JSONB
type LifeEventList []LifeEvent

// Value implements the driver.Valuer interface
func (l LifeEventList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *LifeEventList) Scan(value interface{}) error {
	if value == nil {
		*l = LifeEventList{}
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

	return json.Unmarshal(bytes, l)
}

// Profile is the one-to-one extension of a User. The unique index on user_id
// keeps the at-most-one-profile invariant; concurrent first writes race on it
// and the loser re-reads instead of inserting a duplicate.
type Profile struct {
	ID                 uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CoverPhoto         string           `gorm:"size:255" json:"cover_photo"`
	BirthDate          *time.Time       `json:"birth_date,omitempty"`
	Gender             string           `gorm:"size:50" json:"gender"`
	RelationshipStatus string           `gorm:"size:50" json:"relationship_status"`
	PhoneNumber        string           `gorm:"size:50" json:"phone_number"`
	Website            string           `gorm:"size:255" json:"website"`
	AlternativeEmail   string           `gorm:"size:255" json:"alternative_email"`
	CurrentCity        string           `gorm:"size:100" json:"current_city"`
	Hometown           string           `gorm:"size:100" json:"hometown"`
	PlacesLived        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"places_lived"`
	Interests          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"interests"`
	Music              JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"music"`
	Movies             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"movies"`
	Books              JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"books"`
	Sports             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"sports"`
	LifeEvents         LifeEventList    `gorm:"type:jsonb;not null;default:'[]'" json:"life_events"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
}

// Education is an independent record owned by the user in user_id. Ownership
// is verified on every mutation.
type Education struct {
	ID           uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Institution  string             `gorm:"size:255;not null" json:"institution"`
	Degree       string             `gorm:"size:255" json:"degree"`
	FieldOfStudy string             `gorm:"size:255" json:"field_of_study"`
	StartDate    *time.Time         `json:"start_date,omitempty"`
	EndDate      *time.Time         `json:"end_date,omitempty"`
	Current      bool               `gorm:"not null;default:false" json:"current"`
	Description  string             `gorm:"type:text" json:"description"`
	Visibility   privacy.Visibility `gorm:"size:20;not null;default:'FRIENDS'" json:"visibility"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type WorkExperience struct {
	ID          uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Company     string             `gorm:"size:255;not null" json:"company"`
	Position    string             `gorm:"size:255" json:"position"`
	Location    string             `gorm:"size:255" json:"location"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
	EndDate     *time.Time         `json:"end_date,omitempty"`
	Current     bool               `gorm:"not null;default:false" json:"current"`
	Description string             `gorm:"type:text" json:"description"`
	Visibility  privacy.Visibility `gorm:"size:20;not null;default:'FRIENDS'" json:"visibility"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
