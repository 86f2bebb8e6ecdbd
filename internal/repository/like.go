package repository

import (
	"context"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines interface for like toggling
type LikeRepository interface {
	Toggle(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (liked bool, count int64, err error)
	Count(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the user's like on a target. Any existing like rows for the
// (user, target) pair are removed first; if none existed, a single fresh row
// is inserted. Stray duplicate rows therefore collapse on the next toggle.
func (r *likeRepository) Toggle(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, int64, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			liked = true
			return tx.Create(&models.Like{
				UserID:     userID,
				TargetType: targetType,
				TargetID:   targetID,
			}).Error
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	count, err := r.Count(ctx, targetType, targetID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *likeRepository) Count(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}
