package service

import (
	"bookclub/internal/models"
)

// Authority is a user's effective standing within a group.
// The creator always carries moderator privilege and is always a member,
// whether or not a membership row for them exists.
type Authority struct {
	IsCreator   bool
	IsModerator bool
	IsMember    bool
}

// ResolveRole computes a user's authority over a group from the group's
// current member rows. It is pure and total: a nil group, a zero userID or
// malformed member rows resolve to all-false rather than an error.
//
// Member rows are compared through ResolvedUserID so rows stored as a bare
// user id and rows stored as an expanded user record resolve identically.
func ResolveRole(group *models.Group, userID uint) Authority {
	var auth Authority
	if group == nil || userID == 0 {
		return auth
	}

	auth.IsCreator = group.CreatorID == userID
	for _, m := range group.Members {
		if m.ResolvedUserID() != userID {
			continue
		}
		auth.IsMember = true
		if m.Role == models.GroupRoleModerator {
			auth.IsModerator = true
		}
	}

	if auth.IsCreator {
		auth.IsModerator = true
		auth.IsMember = true
	}
	return auth
}
