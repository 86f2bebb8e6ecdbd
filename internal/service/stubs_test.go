package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn         func(context.Context, *models.Group) error
	getByIDFn        func(context.Context, uint) (*models.Group, error)
	getByNameFn      func(context.Context, string) (*models.Group, error)
	listFn           func(context.Context, repository.ListGroupsParams) ([]models.Group, int64, error)
	featuredFn       func(context.Context, int, int) ([]models.Group, error)
	popularFn        func(context.Context, int) ([]models.Group, error)
	updateFn         func(context.Context, *models.Group) error
	updateStatsFn    func(context.Context, uint, int, time.Time) error
	listMembersFn    func(context.Context, uint) ([]models.GroupMember, error)
	addMemberFn      func(context.Context, *models.GroupMember) error
	replaceMembersFn func(context.Context, uint, []models.GroupMember) error
	removeMemberFn   func(context.Context, uint, uint) error
	setMemberRoleFn  func(context.Context, uint, uint, models.GroupMemberRole) error
}

func (s *groupRepoStub) Create(ctx context.Context, g *models.Group) error { return s.createFn(ctx, g) }
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetByName(ctx context.Context, name string) (*models.Group, error) {
	return s.getByNameFn(ctx, name)
}
func (s *groupRepoStub) List(ctx context.Context, p repository.ListGroupsParams) ([]models.Group, int64, error) {
	return s.listFn(ctx, p)
}
func (s *groupRepoStub) Featured(ctx context.Context, minMembers, limit int) ([]models.Group, error) {
	return s.featuredFn(ctx, minMembers, limit)
}
func (s *groupRepoStub) Popular(ctx context.Context, limit int) ([]models.Group, error) {
	return s.popularFn(ctx, limit)
}
func (s *groupRepoStub) Update(ctx context.Context, g *models.Group) error { return s.updateFn(ctx, g) }
func (s *groupRepoStub) UpdateStats(ctx context.Context, groupID uint, memberCount int, lastActivity time.Time) error {
	return s.updateStatsFn(ctx, groupID, memberCount, lastActivity)
}
func (s *groupRepoStub) ListMembers(ctx context.Context, groupID uint) ([]models.GroupMember, error) {
	return s.listMembersFn(ctx, groupID)
}
func (s *groupRepoStub) AddMember(ctx context.Context, m *models.GroupMember) error {
	return s.addMemberFn(ctx, m)
}
func (s *groupRepoStub) ReplaceMembers(ctx context.Context, groupID uint, members []models.GroupMember) error {
	return s.replaceMembersFn(ctx, groupID, members)
}
func (s *groupRepoStub) RemoveMember(ctx context.Context, groupID, userID uint) error {
	return s.removeMemberFn(ctx, groupID, userID)
}
func (s *groupRepoStub) SetMemberRole(ctx context.Context, groupID, userID uint, role models.GroupMemberRole) error {
	return s.setMemberRoleFn(ctx, groupID, userID, role)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:    func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn:   func(_ context.Context, _ uint) (*models.Group, error) { return &models.Group{}, nil },
		getByNameFn: func(_ context.Context, _ string) (*models.Group, error) { return nil, gormNotFound() },
		listFn: func(_ context.Context, _ repository.ListGroupsParams) ([]models.Group, int64, error) {
			return nil, 0, nil
		},
		featuredFn:    func(_ context.Context, _, _ int) ([]models.Group, error) { return nil, nil },
		popularFn:     func(_ context.Context, _ int) ([]models.Group, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Group) error { return nil },
		updateStatsFn: func(_ context.Context, _ uint, _ int, _ time.Time) error { return nil },
		listMembersFn: func(_ context.Context, _ uint) ([]models.GroupMember, error) { return nil, nil },
		addMemberFn:   func(_ context.Context, _ *models.GroupMember) error { return nil },
		replaceMembersFn: func(_ context.Context, _ uint, _ []models.GroupMember) error {
			return nil
		},
		removeMemberFn:  func(_ context.Context, _, _ uint) error { return nil },
		setMemberRoleFn: func(_ context.Context, _, _ uint, _ models.GroupMemberRole) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, gormNotFound() },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, gormNotFound() },
		searchFn:        func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	listByGroupFn func(context.Context, repository.ListPostsParams) ([]models.Post, int64, error)
	listPinnedFn  func(context.Context, uint) ([]models.Post, error)
	setPinnedFn   func(context.Context, uint, bool) error
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, p repository.ListPostsParams) ([]models.Post, int64, error) {
	return s.listByGroupFn(ctx, p)
}
func (s *postRepoStub) ListPinned(ctx context.Context, groupID uint) ([]models.Post, error) {
	return s.listPinnedFn(ctx, groupID)
}
func (s *postRepoStub) SetPinned(ctx context.Context, postID uint, pinned bool) error {
	return s.setPinnedFn(ctx, postID, pinned)
}
func (s *postRepoStub) Delete(ctx context.Context, postID uint) error { return s.deleteFn(ctx, postID) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listByGroupFn: func(_ context.Context, _ repository.ListPostsParams) ([]models.Post, int64, error) {
			return nil, 0, nil
		},
		listPinnedFn:  func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		setPinnedFn:   func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createCommentFn     func(context.Context, *models.Comment) error
	getCommentByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn        func(context.Context, uint, uint) ([]models.Comment, error)
	deleteCommentFn     func(context.Context, uint) error
	createReplyFn       func(context.Context, *models.Reply) error
	getReplyByIDFn      func(context.Context, uint) (*models.Reply, error)
	listRepliesByPostFn func(context.Context, uint, uint) ([]models.Reply, error)
	deleteRepliesFn     func(context.Context, []uint) error
}

func (s *commentRepoStub) CreateComment(ctx context.Context, c *models.Comment) error {
	return s.createCommentFn(ctx, c)
}
func (s *commentRepoStub) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getCommentByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, viewerID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, viewerID)
}
func (s *commentRepoStub) DeleteComment(ctx context.Context, commentID uint) error {
	return s.deleteCommentFn(ctx, commentID)
}
func (s *commentRepoStub) CreateReply(ctx context.Context, r *models.Reply) error {
	return s.createReplyFn(ctx, r)
}
func (s *commentRepoStub) GetReplyByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getReplyByIDFn(ctx, id)
}
func (s *commentRepoStub) ListRepliesByPost(ctx context.Context, postID, viewerID uint) ([]models.Reply, error) {
	return s.listRepliesByPostFn(ctx, postID, viewerID)
}
func (s *commentRepoStub) DeleteReplies(ctx context.Context, ids []uint) error {
	return s.deleteRepliesFn(ctx, ids)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createCommentFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getCommentByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn:    func(_ context.Context, _, _ uint) ([]models.Comment, error) { return nil, nil },
		deleteCommentFn: func(_ context.Context, _ uint) error { return nil },
		createReplyFn:   func(_ context.Context, _ *models.Reply) error { return nil },
		getReplyByIDFn: func(_ context.Context, id uint) (*models.Reply, error) {
			return &models.Reply{ID: id}, nil
		},
		listRepliesByPostFn: func(_ context.Context, _, _ uint) ([]models.Reply, error) { return nil, nil },
		deleteRepliesFn:     func(_ context.Context, _ []uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn func(context.Context, uint, models.LikeTarget, uint) (bool, int64, error)
	countFn  func(context.Context, models.LikeTarget, uint) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID uint, t models.LikeTarget, targetID uint) (bool, int64, error) {
	return s.toggleFn(ctx, userID, t, targetID)
}
func (s *likeRepoStub) Count(ctx context.Context, t models.LikeTarget, targetID uint) (int64, error) {
	return s.countFn(ctx, t, targetID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn: func(_ context.Context, _ uint, _ models.LikeTarget, _ uint) (bool, int64, error) {
			return true, 1, nil
		},
		countFn: func(_ context.Context, _ models.LikeTarget, _ uint) (int64, error) { return 0, nil },
	}
}

// notifRepoStub is a stub for repository.NotificationRepository.
type notifRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	listByRecipientFn func(context.Context, uint) ([]models.Notification, error)
	countUnreadFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint, uint) error
	markAllReadFn     func(context.Context, uint) error
}

func (s *notifRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notifRepoStub) ListByRecipient(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID)
}
func (s *notifRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}
func (s *notifRepoStub) MarkRead(ctx context.Context, recipientID, id uint) error {
	return s.markReadFn(ctx, recipientID, id)
}
func (s *notifRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}

func noopNotifRepo() *notifRepoStub {
	return &notifRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		listByRecipientFn: func(_ context.Context, _ uint) ([]models.Notification, error) {
			return nil, nil
		},
		countUnreadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _, _ uint) error { return nil },
		markAllReadFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// recordingNotifRepo captures every notification the services emit.
type recordingNotifRepo struct {
	*notifRepoStub
	created []models.Notification
}

func newRecordingNotifRepo() *recordingNotifRepo {
	r := &recordingNotifRepo{notifRepoStub: noopNotifRepo()}
	r.createFn = func(_ context.Context, n *models.Notification) error {
		r.created = append(r.created, *n)
		return nil
	}
	return r
}

// invitationRepoStub is a stub for repository.InvitationRepository.
type invitationRepoStub struct {
	createFn     func(context.Context, *models.Invitation) error
	getByIDFn    func(context.Context, uint) (*models.Invitation, error)
	getPendingFn func(context.Context, uint, uint, uint) (*models.Invitation, error)
	resolveFn    func(context.Context, uint, models.InvitationStatus, time.Time) error
}

func (s *invitationRepoStub) Create(ctx context.Context, inv *models.Invitation) error {
	return s.createFn(ctx, inv)
}
func (s *invitationRepoStub) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *invitationRepoStub) GetPending(ctx context.Context, groupID, inviterID, recipientID uint) (*models.Invitation, error) {
	return s.getPendingFn(ctx, groupID, inviterID, recipientID)
}
func (s *invitationRepoStub) Resolve(ctx context.Context, id uint, status models.InvitationStatus, at time.Time) error {
	return s.resolveFn(ctx, id, status, at)
}

func noopInvitationRepo() *invitationRepoStub {
	return &invitationRepoStub{
		createFn: func(_ context.Context, _ *models.Invitation) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Invitation, error) {
			return &models.Invitation{ID: id}, nil
		},
		getPendingFn: func(_ context.Context, _, _, _ uint) (*models.Invitation, error) {
			return nil, gormNotFound()
		},
		resolveFn: func(_ context.Context, _ uint, _ models.InvitationStatus, _ time.Time) error {
			return nil
		},
	}
}

// friendCheckerStub implements FriendChecker.
type friendCheckerStub struct {
	areFriendsFn func(context.Context, uint, uint) (bool, error)
}

func (s *friendCheckerStub) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	return s.areFriendsFn(ctx, a, b)
}

func allFriends() *friendCheckerStub {
	return &friendCheckerStub{
		areFriendsFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

func gormNotFound() error {
	return gorm.ErrRecordNotFound
}

// assertAppError asserts that err carries the given application error code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
