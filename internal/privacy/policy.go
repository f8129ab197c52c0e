// Package privacy contains the visibility rules that decide whether a viewer
// may see a piece of profile content. The package is pure: it never touches
// the database, callers supply the connection state.
package privacy

// Visibility is the closed set of audience levels a field or section can carry.
type Visibility string

const (
	VisibilityPublic          Visibility = "PUBLIC"
	VisibilityFriends         Visibility = "FRIENDS"
	VisibilitySpecificFriends Visibility = "SPECIFIC_FRIENDS"
	VisibilityOnlyMe          Visibility = "ONLY_ME"
)

// Valid reports whether v is one of the four known levels. Anything else is
// rejected at write time; the read path never sees an unknown level.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilitySpecificFriends, VisibilityOnlyMe:
		return true
	}
	return false
}

// Profile section names carrying their own visibility level.
const (
	SectionBasicInfo      = "BASIC_INFO"
	SectionWorkExperience = "WORK_EXPERIENCE"
	SectionEducation      = "EDUCATION"
	SectionContactInfo    = "CONTACT_INFO"
	SectionRelationships  = "RELATIONSHIPS"
	SectionLifeEvents     = "LIFE_EVENTS"
	SectionInterests      = "INTERESTS"
)

// DefaultSectionVisibility returns the per-section levels a fresh settings
// record starts with.
func DefaultSectionVisibility() map[string]Visibility {
	return map[string]Visibility{
		SectionBasicInfo:      VisibilityPublic,
		SectionWorkExperience: VisibilityFriends,
		SectionEducation:      VisibilityFriends,
		SectionContactInfo:    VisibilityOnlyMe,
		SectionRelationships:  VisibilityFriends,
		SectionLifeEvents:     VisibilityFriends,
		SectionInterests:      VisibilityPublic,
	}
}

// CanView decides whether viewerID may see content of the given level owned
// by ownerID. Owners always see their own content. SPECIFIC_FRIENDS denies
// for everyone but the owner: no per-field recipient list is modeled, so the
// level behaves like ONLY_ME for other viewers.
func CanView(level Visibility, viewerID, ownerID string, connected bool) bool {
	if viewerID != "" && viewerID == ownerID {
		return true
	}

	switch level {
	case VisibilityPublic:
		return true
	case VisibilityFriends:
		return connected
	case VisibilitySpecificFriends:
		return false
	case VisibilityOnlyMe:
		return false
	default:
		return false
	}
}

// Filter returns value untouched when the viewer may see it and the zero
// value otherwise. Used by the aggregator to blank out gated sections.
func Filter[T any](value T, level Visibility, viewerID, ownerID string, connected bool) T {
	if CanView(level, viewerID, ownerID, connected) {
		return value
	}
	var zero T
	return zero
}
