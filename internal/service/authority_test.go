package service

import (
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoleCreatorAlwaysModeratorAndMember(t *testing.T) {
	group := &models.Group{ID: 1, CreatorID: 7}

	auth := ResolveRole(group, 7)
	assert.True(t, auth.IsCreator)
	assert.True(t, auth.IsModerator)
	assert.True(t, auth.IsMember)
}

func TestResolveRolePlainMember(t *testing.T) {
	group := &models.Group{
		ID:        1,
		CreatorID: 7,
		Members: []models.GroupMember{
			{UserID: 9, Role: models.GroupRoleMember},
		},
	}

	auth := ResolveRole(group, 9)
	assert.False(t, auth.IsCreator)
	assert.False(t, auth.IsModerator)
	assert.True(t, auth.IsMember)
}

func TestResolveRoleModerator(t *testing.T) {
	group := &models.Group{
		ID:        1,
		CreatorID: 7,
		Members: []models.GroupMember{
			{UserID: 9, Role: models.GroupRoleModerator},
		},
	}

	auth := ResolveRole(group, 9)
	assert.True(t, auth.IsModerator)
	assert.True(t, auth.IsMember)
	assert.False(t, auth.IsCreator)
}

// Rows stored as a bare id and rows stored only as an expanded user record
// must resolve identically.
func TestResolveRoleDualShapeRows(t *testing.T) {
	group := &models.Group{
		ID:        1,
		CreatorID: 7,
		Members: []models.GroupMember{
			{UserID: 9, Role: models.GroupRoleMember},
			{User: &models.User{ID: 11}, Role: models.GroupRoleModerator},
		},
	}

	bare := ResolveRole(group, 9)
	assert.True(t, bare.IsMember)

	expanded := ResolveRole(group, 11)
	assert.True(t, expanded.IsMember)
	assert.True(t, expanded.IsModerator)
}

func TestResolveRoleTotalOnMalformedInput(t *testing.T) {
	assert.Equal(t, Authority{}, ResolveRole(nil, 9))
	assert.Equal(t, Authority{}, ResolveRole(&models.Group{CreatorID: 7}, 0))

	// A row with neither id shape resolves to nobody.
	group := &models.Group{
		CreatorID: 7,
		Members:   []models.GroupMember{{Role: models.GroupRoleModerator}},
	}
	assert.Equal(t, Authority{}, ResolveRole(group, 9))
}

func TestResolveRoleNonMember(t *testing.T) {
	group := &models.Group{
		ID:        1,
		CreatorID: 7,
		Members:   []models.GroupMember{{UserID: 9}},
	}
	assert.Equal(t, Authority{}, ResolveRole(group, 42))
}
