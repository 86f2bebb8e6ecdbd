package repository

import (
	"context"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment and reply operations.
// Replies are stored flat per post; the service layer assembles the tree.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, viewerID uint) ([]models.Comment, error)
	DeleteComment(ctx context.Context, commentID uint) error

	CreateReply(ctx context.Context, reply *models.Reply) error
	GetReplyByID(ctx context.Context, id uint) (*models.Reply, error)
	ListRepliesByPost(ctx context.Context, postID uint, viewerID uint) ([]models.Reply, error)
	DeleteReplies(ctx context.Context, ids []uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, viewerID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Select(`post_comments.*,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = post_comments.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = post_comments.id AND likes.user_id = ?) AS liked`,
			viewerID).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// DeleteComment removes the comment row and its likes. Reply cleanup is the
// caller's job since the reply subtree has to be walked first.
func (r *commentRepository) DeleteComment(ctx context.Context, commentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetComment, commentID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}

func (r *commentRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *commentRepository) GetReplyByID(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&reply, id).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *commentRepository) ListRepliesByPost(ctx context.Context, postID uint, viewerID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Select(`comment_replies.*,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'reply' AND likes.target_id = comment_replies.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'reply' AND likes.target_id = comment_replies.id AND likes.user_id = ?) AS liked`,
			viewerID).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *commentRepository) DeleteReplies(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id IN ?", models.LikeTargetReply, ids).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Reply{}).Error
	})
}
