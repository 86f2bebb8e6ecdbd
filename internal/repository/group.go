package repository

import (
	"context"
	"time"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// GroupSort selects the ordering of group catalog listings.
type GroupSort string

const (
	// GroupSortPopular orders by member count, then recent activity.
	GroupSortPopular GroupSort = "popular"
	// GroupSortRecent orders by creation time.
	GroupSortRecent GroupSort = "recent"
	// GroupSortActive orders by recent activity.
	GroupSortActive GroupSort = "active"
)

// ListGroupsParams narrows and orders the group catalog.
type ListGroupsParams struct {
	Search   string
	Category string
	Sort     GroupSort
	Limit    int
	Offset   int
}

// GroupRepository defines interface for group and membership operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetByName(ctx context.Context, name string) (*models.Group, error)
	List(ctx context.Context, params ListGroupsParams) ([]models.Group, int64, error)
	Featured(ctx context.Context, minMembers int, limit int) ([]models.Group, error)
	Popular(ctx context.Context, limit int) ([]models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	UpdateStats(ctx context.Context, groupID uint, memberCount int, lastActivity time.Time) error

	ListMembers(ctx context.Context, groupID uint) ([]models.GroupMember, error)
	AddMember(ctx context.Context, member *models.GroupMember) error
	ReplaceMembers(ctx context.Context, groupID uint, members []models.GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID uint) error
	SetMemberRole(ctx context.Context, groupID, userID uint, role models.GroupMemberRole) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, params ListGroupsParams) ([]models.Group, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Group{}).Where("is_active = ?", true)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if params.Category != "" {
		q = q.Where("category = ?", params.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch params.Sort {
	case GroupSortRecent:
		q = q.Order("created_at DESC")
	case GroupSortActive:
		q = q.Order("last_activity DESC")
	default:
		q = q.Order("member_count DESC, last_activity DESC")
	}

	var groups []models.Group
	err := q.Preload("Creator").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&groups).Error
	return groups, total, err
}

func (r *groupRepository) Featured(ctx context.Context, minMembers int, limit int) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("is_active = ? AND member_count >= ?", true, minMembers).
		Order("member_count DESC, last_activity DESC").
		Limit(limit).
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) Popular(ctx context.Context, limit int) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("is_active = ?", true).
		Order("member_count DESC, last_activity DESC").
		Limit(limit).
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) Update(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *groupRepository) UpdateStats(ctx context.Context, groupID uint, memberCount int, lastActivity time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Group{}).
		Where("id = ?", groupID).
		Updates(map[string]interface{}{
			"member_count":  memberCount,
			"last_activity": lastActivity,
		}).Error
}

func (r *groupRepository) ListMembers(ctx context.Context, groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (r *groupRepository) AddMember(ctx context.Context, member *models.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// ReplaceMembers rewrites a group's entire member list in one transaction.
// Used by the leave path, which rebuilds the list into canonical rows and
// silently drops duplicates or rows without a resolvable user.
func (r *groupRepository) ReplaceMembers(ctx context.Context, groupID uint, members []models.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ID = 0
			members[i].GroupID = groupID
			if err := tx.Create(&members[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

func (r *groupRepository) SetMemberRole(ctx context.Context, groupID, userID uint, role models.GroupMemberRole) error {
	return r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role).Error
}
