package server

import (
	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/groups/:id/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.CreatePost(c.Context(), service.CreatePostInput{
		GroupID:  groupID,
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Type:     models.PostType(req.Type),
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts handles GET /api/groups/:id/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	page, limit := pagination(c)

	result, err := s.posts.ListPosts(c.Context(), service.ListPostsInput{
		GroupID:  groupID,
		ViewerID: currentUserID(c),
		Type:     models.PostType(c.Query("type")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(result)
}

// ListPinnedPosts handles GET /api/groups/:id/posts/pinned
func (s *Server) ListPinnedPosts(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	posts, err := s.posts.ListPinned(c.Context(), groupID, currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	post, err := s.posts.GetPost(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.posts.DeletePost(c.Context(), postID, currentUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// AddComment handles POST /api/posts/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.posts.AddComment(c.Context(), service.AddCommentInput{
		PostID:   postID,
		AuthorID: currentUserID(c),
		Content:  req.Content,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	commentID, err := paramID(c, "commentId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.posts.DeleteComment(c.Context(), postID, commentID, currentUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// AddReply handles POST /api/posts/:id/replies/:targetId where targetId is
// a comment id or the id of any reply in the post's tree.
func (s *Server) AddReply(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	targetID, err := paramID(c, "targetId")
	if err != nil {
		return respondErr(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	reply, err := s.posts.AddReply(c.Context(), service.AddReplyInput{
		PostID:   postID,
		TargetID: targetID,
		AuthorID: currentUserID(c),
		Content:  req.Content,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// DeleteReply handles DELETE /api/posts/:id/replies/:replyId
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	replyID, err := paramID(c, "replyId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.posts.DeleteReply(c.Context(), postID, replyID, currentUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reply deleted"})
}

// ToggleLike handles POST /api/likes/:targetType/:targetId
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	targetID, err := paramID(c, "targetId")
	if err != nil {
		return respondErr(c, err)
	}

	result, err := s.posts.ToggleLike(c.Context(),
		models.LikeTarget(c.Params("targetType")), targetID, currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(result)
}
