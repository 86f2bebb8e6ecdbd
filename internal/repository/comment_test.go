package repository

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "commenter")
	viewer := seedUser(t, db, "viewer")
	_, post := seedGroupWithPost(t, db, author)

	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "Loved the ending"}

	t.Run("CreateComment and ListByPost", func(t *testing.T) {
		require.NoError(t, repo.CreateComment(ctx, comment))
		assert.NotZero(t, comment.ID)

		require.NoError(t, db.Create(&models.Like{
			UserID: viewer.ID, TargetType: models.LikeTargetComment, TargetID: comment.ID,
		}).Error)

		comments, err := repo.ListByPost(ctx, post.ID, viewer.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, 1, comments[0].LikesCount)
		assert.True(t, comments[0].Liked)
		require.NotNil(t, comments[0].Author)
		assert.Equal(t, "commenter", comments[0].Author.Username)
	})

	t.Run("CreateReply and ListRepliesByPost", func(t *testing.T) {
		first := &models.Reply{PostID: post.ID, CommentID: comment.ID, AuthorID: viewer.ID, Content: "Same here"}
		require.NoError(t, repo.CreateReply(ctx, first))

		nested := &models.Reply{
			PostID: post.ID, CommentID: comment.ID, ParentReplyID: &first.ID,
			AuthorID: author.ID, Content: "Glad it landed",
		}
		require.NoError(t, repo.CreateReply(ctx, nested))

		replies, err := repo.ListRepliesByPost(ctx, post.ID, viewer.ID)
		require.NoError(t, err)
		require.Len(t, replies, 2)
		assert.Equal(t, first.ID, replies[0].ID)
		require.NotNil(t, replies[1].ParentReplyID)
		assert.Equal(t, first.ID, *replies[1].ParentReplyID)
	})

	t.Run("GetReplyByID", func(t *testing.T) {
		replies, err := repo.ListRepliesByPost(ctx, post.ID, 0)
		require.NoError(t, err)
		fetched, err := repo.GetReplyByID(ctx, replies[0].ID)
		require.NoError(t, err)
		assert.Equal(t, comment.ID, fetched.CommentID)
	})

	t.Run("DeleteReplies removes rows and their likes", func(t *testing.T) {
		replies, err := repo.ListRepliesByPost(ctx, post.ID, 0)
		require.NoError(t, err)
		require.Len(t, replies, 2)

		require.NoError(t, db.Create(&models.Like{
			UserID: author.ID, TargetType: models.LikeTargetReply, TargetID: replies[0].ID,
		}).Error)

		ids := []uint{replies[0].ID, replies[1].ID}
		require.NoError(t, repo.DeleteReplies(ctx, ids))
		require.NoError(t, repo.DeleteReplies(ctx, nil))

		remaining, err := repo.ListRepliesByPost(ctx, post.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		var likes int64
		db.Model(&models.Like{}).Where("target_type = ?", models.LikeTargetReply).Count(&likes)
		assert.Zero(t, likes)
	})

	t.Run("DeleteComment cascades to replies and likes", func(t *testing.T) {
		reply := &models.Reply{PostID: post.ID, CommentID: comment.ID, AuthorID: viewer.ID, Content: "late reply"}
		require.NoError(t, repo.CreateReply(ctx, reply))

		require.NoError(t, repo.DeleteComment(ctx, comment.ID))

		_, err := repo.GetCommentByID(ctx, comment.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		remaining, err := repo.ListRepliesByPost(ctx, post.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		var likes int64
		db.Model(&models.Like{}).Where("target_type = ?", models.LikeTargetComment).Count(&likes)
		assert.Zero(t, likes)
	})
}
