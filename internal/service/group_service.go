package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookclub/internal/cache"
	"bookclub/internal/models"
	"bookclub/internal/observability"
	"bookclub/internal/repository"
	"bookclub/internal/validation"

	"gorm.io/gorm"
)

const (
	featuredMinMembers = 50
	featuredLimit      = 3
	popularLimit       = 6

	groupListCachePrefix = "groups:list:"
)

// GroupService owns group lifecycle and the membership store.
//
// Every mutation loads the group's member rows fresh and resolves the
// actor's authority against that state, never against a caller-supplied
// snapshot. Member count is re-derived from the row count after each
// mutation and lastActivity is bumped.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

type CreateGroupInput struct {
	CreatorID   uint
	Name        string
	Description string
	Category    string
	ImageURL    string
}

type ListGroupsInput struct {
	Search   string
	Category string
	Sort     string
	Page     int
	Limit    int
}

// GroupPage is one page of the group catalog.
type GroupPage struct {
	Groups     []models.Group `json:"groups"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_prev"`
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo, userRepo: userRepo}
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if err := validation.ValidateGroupInput(in.Name, in.Description, in.Category); err != nil {
		return nil, err
	}

	if _, err := s.groupRepo.GetByName(ctx, in.Name); err == nil {
		return nil, models.NewConflictError("A group with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	group := &models.Group{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		CreatorID:    in.CreatorID,
		ImageURL:     in.ImageURL,
		MemberCount:  1,
		IsActive:     true,
		LastActivity: now,
		Members: []models.GroupMember{{
			UserID:   in.CreatorID,
			Role:     models.GroupRoleModerator,
			JoinedAt: now,
		}},
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	observability.MembershipMutations.WithLabelValues("create").Inc()
	cache.InvalidatePrefix(ctx, groupListCachePrefix)

	return s.groupRepo.GetByID(ctx, group.ID)
}

func (s *GroupService) GetGroup(ctx context.Context, groupID uint) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Group", groupID)
	}
	return group, err
}

func (s *GroupService) ListGroups(ctx context.Context, in ListGroupsInput) (*GroupPage, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	key := fmt.Sprintf("%s%s:%s:%s:%d:%d",
		groupListCachePrefix, in.Search, in.Category, in.Sort, in.Page, in.Limit)
	var cached GroupPage
	if cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	groups, total, err := s.groupRepo.List(ctx, repository.ListGroupsParams{
		Search:   in.Search,
		Category: in.Category,
		Sort:     repository.GroupSort(in.Sort),
		Limit:    in.Limit,
		Offset:   (in.Page - 1) * in.Limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(in.Limit) - 1) / int64(in.Limit))
	page := &GroupPage{
		Groups:     groups,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: totalPages,
		HasNext:    in.Page < totalPages,
		HasPrev:    in.Page > 1,
	}
	cache.SetJSON(ctx, key, page, cache.GroupListTTL)
	return page, nil
}

func (s *GroupService) FeaturedGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.Featured(ctx, featuredMinMembers, featuredLimit)
}

func (s *GroupService) PopularGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.Popular(ctx, popularLimit)
}

func (s *GroupService) Categories() []string {
	return models.GroupCategories
}

// Join appends a fresh membership record for the actor. Creators,
// moderators and existing members are all rejected with Conflict.
func (s *GroupService) Join(ctx context.Context, groupID, userID uint) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	auth := ResolveRole(group, userID)
	switch {
	case auth.IsCreator:
		return nil, models.NewConflictError("You created this group and are already a member")
	case auth.IsModerator:
		return nil, models.NewConflictError("You are already a moderator of this group")
	case auth.IsMember:
		return nil, models.NewConflictError("You are already a member of this group")
	}

	member := &models.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	observability.MembershipMutations.WithLabelValues("join").Inc()

	if err := s.refreshStats(ctx, groupID); err != nil {
		return nil, err
	}
	cache.InvalidatePrefix(ctx, groupListCachePrefix)
	return s.groupRepo.GetByID(ctx, groupID)
}

// Leave removes the actor's membership. The member list is rebuilt into
// canonical rows on the way out: duplicate rows and rows with no resolvable
// user identity, left behind by earlier inconsistencies, are silently
// dropped rather than surfaced as errors.
func (s *GroupService) Leave(ctx context.Context, groupID, userID uint) error {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if group.CreatorID == userID {
		return models.NewForbiddenError("The creator cannot leave the group")
	}

	rebuilt := make([]models.GroupMember, 0, len(group.Members))
	seen := make(map[uint]bool, len(group.Members))
	for _, m := range group.Members {
		id := m.ResolvedUserID()
		if id == 0 || id == userID || seen[id] {
			continue
		}
		seen[id] = true
		rebuilt = append(rebuilt, models.GroupMember{
			GroupID:  groupID,
			UserID:   id,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	if err := s.groupRepo.ReplaceMembers(ctx, groupID, rebuilt); err != nil {
		return err
	}
	observability.MembershipMutations.WithLabelValues("leave").Inc()

	if err := s.refreshStats(ctx, groupID); err != nil {
		return err
	}
	cache.InvalidatePrefix(ctx, groupListCachePrefix)
	return nil
}

// Promote grants moderator role to an existing member.
func (s *GroupService) Promote(ctx context.Context, groupID, actorID, targetID uint) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !ResolveRole(group, actorID).IsModerator {
		return nil, models.NewForbiddenError("Only moderators can promote members")
	}

	target := ResolveRole(group, targetID)
	if !target.IsMember {
		return nil, models.NewConflictError("User must be a member before being promoted")
	}
	if target.IsModerator {
		return nil, models.NewConflictError("User is already a moderator")
	}

	if err := s.groupRepo.SetMemberRole(ctx, groupID, targetID, models.GroupRoleModerator); err != nil {
		return nil, err
	}
	observability.MembershipMutations.WithLabelValues("promote").Inc()

	if err := s.refreshStats(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, groupID)
}

// Demote strips moderator role; the target stays a plain member.
func (s *GroupService) Demote(ctx context.Context, groupID, actorID, targetID uint) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !ResolveRole(group, actorID).IsModerator {
		return nil, models.NewForbiddenError("Only moderators can demote members")
	}
	if group.CreatorID == targetID {
		return nil, models.NewForbiddenError("The creator cannot be demoted")
	}

	if err := s.groupRepo.SetMemberRole(ctx, groupID, targetID, models.GroupRoleMember); err != nil {
		return nil, err
	}
	observability.MembershipMutations.WithLabelValues("demote").Inc()

	if err := s.refreshStats(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, groupID)
}

// RemoveMember ejects a member from the group entirely.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, actorID, targetID uint) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !ResolveRole(group, actorID).IsModerator {
		return nil, models.NewForbiddenError("Only moderators can remove members")
	}
	if group.CreatorID == targetID {
		return nil, models.NewForbiddenError("The creator cannot be removed from the group")
	}
	if !ResolveRole(group, targetID).IsMember {
		return nil, models.NewNotFoundError("Member", targetID)
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, targetID); err != nil {
		return nil, err
	}
	observability.MembershipMutations.WithLabelValues("remove_member").Inc()

	if err := s.refreshStats(ctx, groupID); err != nil {
		return nil, err
	}
	cache.InvalidatePrefix(ctx, groupListCachePrefix)
	return s.groupRepo.GetByID(ctx, groupID)
}

// UpdateImages sets the group's avatar and cover image URLs. Moderator-gated.
// Empty fields are left unchanged.
func (s *GroupService) UpdateImages(ctx context.Context, groupID, actorID uint, imageURL, coverImageURL string) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !ResolveRole(group, actorID).IsModerator {
		return nil, models.NewForbiddenError("Only moderators can update group images")
	}

	if imageURL != "" {
		group.ImageURL = imageURL
	}
	if coverImageURL != "" {
		group.CoverImageURL = coverImageURL
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	cache.InvalidatePrefix(ctx, groupListCachePrefix)
	return s.groupRepo.GetByID(ctx, groupID)
}

// TouchActivity bumps the group's lastActivity without changing membership.
func (s *GroupService) TouchActivity(ctx context.Context, groupID uint) error {
	return s.refreshStats(ctx, groupID)
}

// refreshStats re-derives memberCount from the current member rows and
// bumps lastActivity. The count is never incremented in place.
func (s *GroupService) refreshStats(ctx context.Context, groupID uint) error {
	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return err
	}
	return s.groupRepo.UpdateStats(ctx, groupID, len(members), time.Now())
}
