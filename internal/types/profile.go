package types

import (
	"time"

	"github.com/socialite-app/backend/internal/models"
)

// EducationView is an education entry as seen by a viewer.
type EducationView struct {
	ID           string     `json:"id"`
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree,omitempty"`
	FieldOfStudy string     `json:"field_of_study,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// WorkExperienceView is a work entry as seen by a viewer.
type WorkExperienceView struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	Position    string     `json:"position,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type LifeEventView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// ProfileView is the viewer-scoped composite assembled by the aggregator.
// Identity fields are always present; section-gated fields are zeroed when
// the viewer may not see them. A view built for one viewer must never be
// served to another.
type ProfileView struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`

	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	IsOwnProfile   bool  `json:"is_own_profile"`
	IsConnected    bool  `json:"is_connected"`

	CoverPhoto string `json:"cover_photo,omitempty"`

	// BASIC_INFO
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	CurrentCity string     `json:"current_city,omitempty"`
	Hometown    string     `json:"hometown,omitempty"`
	PlacesLived []string   `json:"places_lived,omitempty"`

	// RELATIONSHIPS
	RelationshipStatus string `json:"relationship_status,omitempty"`

	// CONTACT_INFO
	PhoneNumber      string `json:"phone_number,omitempty"`
	Website          string `json:"website,omitempty"`
	AlternativeEmail string `json:"alternative_email,omitempty"`

	// INTERESTS
	Interests []string `json:"interests,omitempty"`
	Music     []string `json:"music,omitempty"`
	Movies    []string `json:"movies,omitempty"`
	Books     []string `json:"books,omitempty"`
	Sports    []string `json:"sports,omitempty"`

	LifeEvents     []LifeEventView      `json:"life_events,omitempty"`
	Education      []EducationView      `json:"education,omitempty"`
	WorkExperience []WorkExperienceView `json:"work_experience,omitempty"`
}

// NewEducationView maps a stored entry to its view shape.
func NewEducationView(e models.Education) EducationView {
	return EducationView{
		ID:           e.ID.String(),
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Current:      e.Current,
		Description:  e.Description,
	}
}

// NewWorkExperienceView maps a stored entry to its view shape.
func NewWorkExperienceView(w models.WorkExperience) WorkExperienceView {
	return WorkExperienceView{
		ID:          w.ID.String(),
		Company:     w.Company,
		Position:    w.Position,
		Location:    w.Location,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Current:     w.Current,
		Description: w.Description,
	}
}

// NewLifeEventView maps an embedded life event to its view shape.
func NewLifeEventView(e models.LifeEvent) LifeEventView {
	return LifeEventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Category:    e.Category,
	}
}
