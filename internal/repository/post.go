package repository

import (
	"context"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// ListPostsParams narrows and pages a group's post listing.
type ListPostsParams struct {
	GroupID  uint
	Type     models.PostType
	ViewerID uint
	Limit    int
	Offset   int
}

// PostRepository defines interface for discussion post operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByGroup(ctx context.Context, params ListPostsParams) ([]models.Post, int64, error)
	ListPinned(ctx context.Context, groupID uint) ([]models.Post, error)
	SetPinned(ctx context.Context, postID uint, pinned bool) error
	Delete(ctx context.Context, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, params ListPostsParams) ([]models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", params.GroupID)
	if params.Type != "" {
		q = q.Where("type = ?", params.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.
		Select(`group_posts.*,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'post' AND likes.target_id = group_posts.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'post' AND likes.target_id = group_posts.id AND likes.user_id = ?) AS liked`,
			params.ViewerID).
		Preload("Author").
		Order("is_pinned DESC, created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) ListPinned(ctx context.Context, groupID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("group_id = ? AND is_pinned = ?", groupID, true).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) SetPinned(ctx context.Context, postID uint, pinned bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("is_pinned", pinned).Error
}

// Delete removes a post together with its comments, replies and likes.
func (r *postRepository) Delete(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM likes WHERE target_type = 'reply' AND target_id IN
			(SELECT id FROM comment_replies WHERE post_id = ?)`, postID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM likes WHERE target_type = 'comment' AND target_id IN
			(SELECT id FROM post_comments WHERE post_id = ?)`, postID).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetPost, postID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}
