package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanViewOwnerAlwaysAllowed(t *testing.T) {
	levels := []Visibility{VisibilityPublic, VisibilityFriends, VisibilitySpecificFriends, VisibilityOnlyMe}
	for _, level := range levels {
		assert.True(t, CanView(level, "user-1", "user-1", false), "owner must see own %s content", level)
	}
}

func TestCanViewPublic(t *testing.T) {
	assert.True(t, CanView(VisibilityPublic, "viewer", "owner", false))
	assert.True(t, CanView(VisibilityPublic, "", "owner", false))
}

func TestCanViewFriendsRequiresConnection(t *testing.T) {
	assert.True(t, CanView(VisibilityFriends, "viewer", "owner", true))
	assert.False(t, CanView(VisibilityFriends, "viewer", "owner", false))
}

func TestCanViewSpecificFriendsAlwaysDenied(t *testing.T) {
	// No recipient list is modeled, so even a connected viewer is denied.
	assert.False(t, CanView(VisibilitySpecificFriends, "viewer", "owner", true))
	assert.False(t, CanView(VisibilitySpecificFriends, "viewer", "owner", false))
}

func TestCanViewOnlyMe(t *testing.T) {
	assert.False(t, CanView(VisibilityOnlyMe, "viewer", "owner", true))
	assert.False(t, CanView(VisibilityOnlyMe, "viewer", "owner", false))
}

func TestCanViewConnectionOnlyMattersForFriends(t *testing.T) {
	for _, level := range []Visibility{VisibilityPublic, VisibilityOnlyMe, VisibilitySpecificFriends} {
		connected := CanView(level, "viewer", "owner", true)
		disconnected := CanView(level, "viewer", "owner", false)
		assert.Equal(t, connected, disconnected, "level %s must ignore connection state", level)
	}
}

func TestCanViewUnknownLevelDenied(t *testing.T) {
	assert.False(t, CanView(Visibility("EVERYONE"), "viewer", "owner", true))
}

func TestVisibilityValid(t *testing.T) {
	assert.True(t, VisibilityPublic.Valid())
	assert.True(t, VisibilityOnlyMe.Valid())
	assert.False(t, Visibility("").Valid())
	assert.False(t, Visibility("public").Valid())
}

func TestFilterBlanksHiddenValues(t *testing.T) {
	assert.Equal(t, "secret", Filter("secret", VisibilityOnlyMe, "owner", "owner", false))
	assert.Equal(t, "", Filter("secret", VisibilityOnlyMe, "viewer", "owner", true))

	hidden := Filter([]string{"jazz"}, VisibilityFriends, "viewer", "owner", false)
	assert.Nil(t, hidden)
	shown := Filter([]string{"jazz"}, VisibilityFriends, "viewer", "owner", true)
	assert.Equal(t, []string{"jazz"}, shown)
}

func TestDefaultSectionVisibility(t *testing.T) {
	defaults := DefaultSectionVisibility()
	assert.Len(t, defaults, 7)
	assert.Equal(t, VisibilityPublic, defaults[SectionBasicInfo])
	assert.Equal(t, VisibilityOnlyMe, defaults[SectionContactInfo])
	assert.Equal(t, VisibilityFriends, defaults[SectionEducation])
	assert.Equal(t, VisibilityPublic, defaults[SectionInterests])
}
