package types

import "time"

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// UpdateProfileRequest carries a partial profile patch. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Bio                *string    `json:"bio"`
	BirthDate          *time.Time `json:"birth_date"`
	Gender             *string    `json:"gender"`
	RelationshipStatus *string    `json:"relationship_status"`
	PhoneNumber        *string    `json:"phone_number"`
	Website            *string    `json:"website"`
	AlternativeEmail   *string    `json:"alternative_email"`
	CurrentCity        *string    `json:"current_city"`
	Hometown           *string    `json:"hometown"`
	PlacesLived        []string   `json:"places_lived"`
	Interests          []string   `json:"interests"`
	Music              []string   `json:"music"`
	Movies             []string   `json:"movies"`
	Books              []string   `json:"books"`
	Sports             []string   `json:"sports"`
}

// EducationRequest creates or updates an education entry.
type EducationRequest struct {
	Institution  string     `json:"institution" binding:"required"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	Visibility   string     `json:"visibility"`
}

// WorkExperienceRequest creates or updates a work entry.
type WorkExperienceRequest struct {
	Company     string     `json:"company" binding:"required"`
	Position    string     `json:"position"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	Visibility  string     `json:"visibility"`
}

type LifeEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Category    string     `json:"category"`
	Visibility  string     `json:"visibility"`
}

// UpdatePrivacySettingsRequest is a partial patch; nil fields keep their
// current values and the section map is merged key by key.
type UpdatePrivacySettingsRequest struct {
	DefaultPostVisibility *string           `json:"default_post_visibility"`
	ProfileVisibility     *string           `json:"profile_visibility"`
	FriendListVisibility  *string           `json:"friend_list_visibility"`
	SectionVisibility     map[string]string `json:"section_visibility"`

	AllowSearchEngines          *bool `json:"allow_search_engines"`
	ShowInFriendSuggestions     *bool `json:"show_in_friend_suggestions"`
	AllowFriendRequests         *bool `json:"allow_friend_requests"`
	AllowDataForRecommendations *bool `json:"allow_data_for_recommendations"`
}

type BlockUserRequest struct {
	Reason string `json:"reason"`
}
