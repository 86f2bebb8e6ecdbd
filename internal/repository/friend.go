package repository

import (
	"context"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines interface for friendship operations
type FriendRepository interface {
	Create(ctx context.Context, f *models.Friendship) error
	GetByID(ctx context.Context, id uint) (*models.Friendship, error)
	GetBetween(ctx context.Context, userA, userB uint) (*models.Friendship, error)
	AreFriends(ctx context.Context, userA, userB uint) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status models.FriendshipStatus) error
	Delete(ctx context.Context, id uint) error
	ListFriends(ctx context.Context, userID uint) ([]models.User, error)
	ListPending(ctx context.Context, userID uint) ([]models.Friendship, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, f *models.Friendship) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var f models.Friendship
	err := r.db.WithContext(ctx).First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetBetween finds the friendship row linking two users in either direction.
func (r *friendRepository) GetBetween(ctx context.Context, userA, userB uint) (*models.Friendship, error) {
	var f models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("status = ?", models.FriendshipStatusAccepted).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) UpdateStatus(ctx context.Context, id uint, status models.FriendshipStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *friendRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Friendship{}, id).Error
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Raw(`SELECT u.* FROM users u
			JOIN friendships f ON (f.requester_id = u.id OR f.addressee_id = u.id)
			WHERE f.status = ? AND (f.requester_id = ? OR f.addressee_id = ?) AND u.id != ?`,
			models.FriendshipStatusAccepted, userID, userID, userID).
		Scan(&users).Error
	return users, err
}

func (r *friendRepository) ListPending(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var items []models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
