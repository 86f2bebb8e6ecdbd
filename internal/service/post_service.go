package service

import (
	"context"
	"errors"
	"fmt"

	"bookclub/internal/models"
	"bookclub/internal/observability"
	"bookclub/internal/repository"

	"gorm.io/gorm"
)

const (
	maxPostTitleLen   = 300
	maxPostContentLen = 20000
	maxCommentLen     = 10000
	titleSnippetLen   = 80
	pinnedListLimit   = 6
)

// PostService owns the discussion tree of a group: posts, comments,
// arbitrarily nested replies, likes and pins.
//
// Replies are stored flat and addressed by id; target resolution and
// subtree collection walk the assembled tree with an explicit stack so
// traversal cost and order stay predictable at any nesting depth.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
	touch       func(ctx context.Context, groupID uint) error
}

type CreatePostInput struct {
	GroupID  uint
	AuthorID uint
	Title    string
	Content  string
	Type     models.PostType
}

type AddCommentInput struct {
	PostID   uint
	AuthorID uint
	Content  string
}

type AddReplyInput struct {
	PostID   uint
	TargetID uint // a comment id, or a reply id anywhere in the post's tree
	AuthorID uint
	Content  string
}

type ListPostsInput struct {
	GroupID  uint
	ViewerID uint
	Type     models.PostType
	Page     int
	Limit    int
}

// PostPage is one page of a group's post listing.
type PostPage struct {
	Posts      []models.Post `json:"posts"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
}

// LikeResult reports the post-toggle state of a like target.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
	touch func(ctx context.Context, groupID uint) error,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		touch:       touch,
	}
}

// authority loads the group's current member rows and resolves the actor
// against them. Always called at mutation time, never on a cached group.
func (s *PostService) authority(ctx context.Context, groupID, userID uint) (Authority, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Authority{}, models.NewNotFoundError("Group", groupID)
	}
	if err != nil {
		return Authority{}, err
	}
	return ResolveRole(group, userID), nil
}

func (s *PostService) getPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, err
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxPostTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 20000 characters)")
	}
	if in.Type == "" {
		in.Type = models.PostTypeDiscussion
	}
	if !models.ValidPostType(in.Type) {
		return nil, models.NewValidationError("Unknown post type")
	}

	auth, err := s.authority(ctx, in.GroupID, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return nil, models.NewForbiddenError("Only group members can post")
	}

	post := &models.Post{
		GroupID:  in.GroupID,
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Content:  in.Content,
		Type:     in.Type,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.DiscussionMutations.WithLabelValues("create_post").Inc()

	if err := s.touch(ctx, in.GroupID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// ListPosts returns a page of a group's posts, pinned first then newest
// first. Non-members are refused.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	auth, err := s.authority(ctx, in.GroupID, in.ViewerID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return nil, models.NewForbiddenError("Only group members can view posts")
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Type != "" && !models.ValidPostType(in.Type) {
		return nil, models.NewValidationError("Unknown post type")
	}

	posts, total, err := s.postRepo.ListByGroup(ctx, repository.ListPostsParams{
		GroupID:  in.GroupID,
		Type:     in.Type,
		ViewerID: in.ViewerID,
		Limit:    in.Limit,
		Offset:   (in.Page - 1) * in.Limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(in.Limit) - 1) / int64(in.Limit))
	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: totalPages,
		HasNext:    in.Page < totalPages,
		HasPrev:    in.Page > 1,
	}, nil
}

// ListPinned returns a group's pinned posts, newest first, capped. A
// non-member gets an empty list rather than an error.
func (s *PostService) ListPinned(ctx context.Context, groupID, viewerID uint) ([]models.Post, error) {
	auth, err := s.authority(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return []models.Post{}, nil
	}

	posts, err := s.postRepo.ListPinned(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(posts) > pinnedListLimit {
		posts = posts[:pinnedListLimit]
	}
	return posts, nil
}

// GetPost returns a post with its full comment tree assembled.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	auth, err := s.authority(ctx, post.GroupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return nil, models.NewForbiddenError("Only group members can view posts")
	}

	comments, err := s.loadCommentTree(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	count, err := s.likeRepo.Count(ctx, models.LikeTargetPost, postID)
	if err != nil {
		return nil, err
	}
	post.LikesCount = int(count)
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, postID, actorID uint) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	auth, err := s.authority(ctx, post.GroupID, actorID)
	if err != nil {
		return err
	}
	if !auth.IsModerator {
		return models.NewForbiddenError("Only moderators can delete posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	observability.DiscussionMutations.WithLabelValues("delete_post").Inc()
	return nil
}

func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	post, err := s.getPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	auth, err := s.authority(ctx, post.GroupID, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return nil, models.NewForbiddenError("Only group members can comment")
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	observability.DiscussionMutations.WithLabelValues("add_comment").Inc()

	s.notifier.Notify(ctx, post.AuthorID, in.AuthorID, models.NotificationPostComment,
		fmt.Sprintf("%s commented on your post: %q", s.displayName(ctx, in.AuthorID), snippet(post.Title)),
		&post.ID)

	if err := s.touch(ctx, post.GroupID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetCommentByID(ctx, comment.ID)
}

func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, actorID uint) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Comment", commentID)
	}
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return models.NewNotFoundError("Comment", commentID)
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		auth, err := s.authority(ctx, post.GroupID, actorID)
		if err != nil {
			return err
		}
		if !auth.IsModerator {
			return models.NewForbiddenError("Only the author or a moderator can delete this comment")
		}
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	observability.DiscussionMutations.WithLabelValues("delete_comment").Inc()
	return nil
}

// AddReply attaches a new reply under the given target, which may be a
// top-level comment or any reply in the post's tree. A top-level comment
// is tried first; failing that the comment trees are walked depth-first
// for a reply with that id. The notification always goes to the immediate
// target's author, never to the top-level comment's author.
func (s *PostService) AddReply(ctx context.Context, in AddReplyInput) (*models.Reply, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Reply too long (max 10000 characters)")
	}

	post, err := s.getPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	auth, err := s.authority(ctx, post.GroupID, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return nil, models.NewForbiddenError("Only group members can reply")
	}

	reply := &models.Reply{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
	}
	var notifyAuthorID uint

	comment, err := s.commentRepo.GetCommentByID(ctx, in.TargetID)
	if err == nil && comment.PostID == in.PostID {
		reply.CommentID = comment.ID
		notifyAuthorID = comment.AuthorID
	} else {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		comments, err := s.loadCommentTree(ctx, in.PostID, 0)
		if err != nil {
			return nil, err
		}
		parent := findReply(comments, in.TargetID)
		if parent == nil {
			return nil, models.NewNotFoundError("Comment or reply", in.TargetID)
		}
		reply.CommentID = parent.CommentID
		reply.ParentReplyID = &parent.ID
		notifyAuthorID = parent.AuthorID
	}

	if err := s.commentRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	observability.DiscussionMutations.WithLabelValues("add_reply").Inc()

	s.notifier.Notify(ctx, notifyAuthorID, in.AuthorID, models.NotificationCommentReply,
		fmt.Sprintf("%s replied to your comment on %q", s.displayName(ctx, in.AuthorID), snippet(post.Title)),
		&post.ID)

	if err := s.touch(ctx, post.GroupID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetReplyByID(ctx, reply.ID)
}

// DeleteReply splices a reply and its nested children out of the tree.
func (s *PostService) DeleteReply(ctx context.Context, postID, replyID, actorID uint) error {
	reply, err := s.commentRepo.GetReplyByID(ctx, replyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Reply", replyID)
	}
	if err != nil {
		return err
	}
	if reply.PostID != postID {
		return models.NewNotFoundError("Reply", replyID)
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if reply.AuthorID != actorID {
		auth, err := s.authority(ctx, post.GroupID, actorID)
		if err != nil {
			return err
		}
		if !auth.IsModerator {
			return models.NewForbiddenError("Only the author or a moderator can delete this reply")
		}
	}

	replies, err := s.commentRepo.ListRepliesByPost(ctx, postID, 0)
	if err != nil {
		return err
	}
	ids := collectReplySubtree(replies, replyID)

	if err := s.commentRepo.DeleteReplies(ctx, ids); err != nil {
		return err
	}
	observability.DiscussionMutations.WithLabelValues("delete_reply").Inc()
	return nil
}

// ToggleLike flips the actor's like on a post, comment or reply. Every
// existing like row for the pair is removed before at most one is written
// back, so duplicates from before the unique index self-heal. A *_like
// notification goes to the target's author on the unliked→liked transition
// only.
func (s *PostService) ToggleLike(ctx context.Context, targetKind models.LikeTarget, targetID, actorID uint) (*LikeResult, error) {
	if !models.ValidLikeTarget(targetKind) {
		return nil, models.NewValidationError("Unknown like target")
	}

	var (
		groupID  uint
		authorID uint
		notif    models.NotificationType
		message  string
		gate     string
		related  uint
	)
	switch targetKind {
	case models.LikeTargetPost:
		post, err := s.getPost(ctx, targetID)
		if err != nil {
			return nil, err
		}
		groupID = post.GroupID
		authorID = post.AuthorID
		notif = models.NotificationPostLike
		message = fmt.Sprintf("%s liked your post: %q", s.displayName(ctx, actorID), snippet(post.Title))
		gate = "You must be a member to like posts"
		related = post.ID
	case models.LikeTargetComment:
		comment, err := s.commentRepo.GetCommentByID(ctx, targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", targetID)
		}
		if err != nil {
			return nil, err
		}
		post, err := s.getPost(ctx, comment.PostID)
		if err != nil {
			return nil, err
		}
		groupID = post.GroupID
		authorID = comment.AuthorID
		notif = models.NotificationCommentLike
		message = fmt.Sprintf("%s liked your comment", s.displayName(ctx, actorID))
		gate = "You must be a member to like comments"
		related = comment.PostID
	case models.LikeTargetReply:
		reply, err := s.commentRepo.GetReplyByID(ctx, targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reply", targetID)
		}
		if err != nil {
			return nil, err
		}
		post, err := s.getPost(ctx, reply.PostID)
		if err != nil {
			return nil, err
		}
		groupID = post.GroupID
		authorID = reply.AuthorID
		notif = models.NotificationReplyLike
		message = fmt.Sprintf("%s liked your reply", s.displayName(ctx, actorID))
		gate = "You must be a member to like replies"
		related = reply.PostID
	}

	auth, err := s.authority(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.IsMember {
		return nil, models.NewForbiddenError(gate)
	}

	liked, count, err := s.likeRepo.Toggle(ctx, actorID, targetKind, targetID)
	if err != nil {
		return nil, err
	}
	observability.DiscussionMutations.WithLabelValues("toggle_like").Inc()

	if liked {
		s.notifier.Notify(ctx, authorID, actorID, notif, message, &related)
	}
	return &LikeResult{Liked: liked, LikesCount: count}, nil
}

// Pin marks a post pinned. Pinning an already-pinned post is a no-op.
func (s *PostService) Pin(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	return s.setPinned(ctx, postID, actorID, true)
}

// Unpin clears the pin flag. Idempotent like Pin.
func (s *PostService) Unpin(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	return s.setPinned(ctx, postID, actorID, false)
}

func (s *PostService) setPinned(ctx context.Context, postID, actorID uint, pinned bool) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	auth, err := s.authority(ctx, post.GroupID, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.IsModerator {
		return nil, models.NewForbiddenError("Only moderators can pin posts")
	}

	if post.IsPinned == pinned {
		return post, nil
	}
	if err := s.postRepo.SetPinned(ctx, postID, pinned); err != nil {
		return nil, err
	}
	observability.DiscussionMutations.WithLabelValues("set_pinned").Inc()
	return s.postRepo.GetByID(ctx, postID)
}

// loadCommentTree loads a post's comments with their reply trees assembled.
func (s *PostService) loadCommentTree(ctx context.Context, postID, viewerID uint) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.ListRepliesByPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	roots := assembleReplyTrees(replies)
	for i := range comments {
		comments[i].Replies = roots[comments[i].ID]
	}
	return comments, nil
}

// displayName is display enrichment only; a missing profile must not fail
// the action the name is being embedded into.
func (s *PostService) displayName(ctx context.Context, userID uint) string {
	if s.userRepo != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			return user.Username
		}
	}
	return "Someone"
}
