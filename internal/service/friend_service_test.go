package service

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// friendRepoStub is a stub for repository.FriendRepository.
type friendRepoStub struct {
	createFn       func(context.Context, *models.Friendship) error
	getByIDFn      func(context.Context, uint) (*models.Friendship, error)
	getBetweenFn   func(context.Context, uint, uint) (*models.Friendship, error)
	areFriendsFn   func(context.Context, uint, uint) (bool, error)
	updateStatusFn func(context.Context, uint, models.FriendshipStatus) error
	deleteFn       func(context.Context, uint) error
	listFriendsFn  func(context.Context, uint) ([]models.User, error)
	listPendingFn  func(context.Context, uint) ([]models.Friendship, error)
}

func (s *friendRepoStub) Create(ctx context.Context, f *models.Friendship) error {
	return s.createFn(ctx, f)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetBetween(ctx context.Context, a, b uint) (*models.Friendship, error) {
	return s.getBetweenFn(ctx, a, b)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	return s.areFriendsFn(ctx, a, b)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, id uint, status models.FriendshipStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *friendRepoStub) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFriendsFn(ctx, userID)
}
func (s *friendRepoStub) ListPending(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.listPendingFn(ctx, userID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:       func(_ context.Context, _ *models.Friendship) error { return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Friendship, error) { return &models.Friendship{ID: id}, nil },
		getBetweenFn:   func(_ context.Context, _, _ uint) (*models.Friendship, error) { return nil, gormNotFound() },
		areFriendsFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		updateStatusFn: func(_ context.Context, _ uint, _ models.FriendshipStatus) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		listFriendsFn:  func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		listPendingFn:  func(_ context.Context, _ uint) ([]models.Friendship, error) { return nil, nil },
	}
}

func TestSendRequestToSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo(), NewNotificationService(noopNotifRepo()))
	_, err := svc.SendRequest(context.Background(), 9, 9)
	assertAppError(t, err, models.CodeValidation)
}

func TestSendRequestExistingConflict(t *testing.T) {
	repo := noopFriendRepo()
	repo.getBetweenFn = func(_ context.Context, _, _ uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 1, Status: models.FriendshipStatusPending}, nil
	}
	svc := NewFriendService(repo, noopUserRepo(), NewNotificationService(noopNotifRepo()))

	_, err := svc.SendRequest(context.Background(), 9, 10)
	assertAppError(t, err, models.CodeConflict)
}

func TestSendRequestNotifiesAddressee(t *testing.T) {
	repo := noopFriendRepo()
	repo.createFn = func(_ context.Context, f *models.Friendship) error {
		f.ID = 55
		return nil
	}
	notifs := newRecordingNotifRepo()
	svc := NewFriendService(repo, noopUserRepo(), NewNotificationService(notifs.notifRepoStub))

	f, err := svc.SendRequest(context.Background(), 9, 10)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusPending, f.Status)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, uint(10), notifs.created[0].RecipientID)
	assert.Equal(t, models.NotificationFriendRequest, notifs.created[0].Type)
}

func TestAcceptOnlyByAddressee(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Friendship, error) {
		return &models.Friendship{ID: id, RequesterID: 9, AddresseeID: 10,
			Status: models.FriendshipStatusPending}, nil
	}
	notifs := newRecordingNotifRepo()
	svc := NewFriendService(repo, noopUserRepo(), NewNotificationService(notifs.notifRepoStub))

	_, err := svc.Accept(context.Background(), 9, 55)
	assertAppError(t, err, models.CodeForbidden)

	f, err := svc.Accept(context.Background(), 10, 55)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusAccepted, f.Status)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, uint(9), notifs.created[0].RecipientID)
	assert.Equal(t, models.NotificationFriendAccept, notifs.created[0].Type)
}

func TestRejectDeletesPendingRequest(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Friendship, error) {
		return &models.Friendship{ID: id, RequesterID: 9, AddresseeID: 10,
			Status: models.FriendshipStatusPending}, nil
	}
	var deleted uint
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	svc := NewFriendService(repo, noopUserRepo(), NewNotificationService(noopNotifRepo()))

	require.NoError(t, svc.Reject(context.Background(), 10, 55))
	assert.Equal(t, uint(55), deleted)
}
