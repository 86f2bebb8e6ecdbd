package service

import (
	"context"
	"errors"
	"fmt"

	"bookclub/internal/models"
	"bookclub/internal/repository"

	"gorm.io/gorm"
)

// FriendService owns the friend graph consumed by the invitation workflow.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   *NotificationService
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, notifier *NotificationService) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo, notifier: notifier}
}

// AreFriends reports whether the two users share an accepted friendship.
func (s *FriendService) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	return s.friendRepo.AreFriends(ctx, userA, userB)
}

func (s *FriendService) SendRequest(ctx context.Context, requesterID, addresseeID uint) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, models.NewValidationError("You cannot send a friend request to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, addresseeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", addresseeID)
		}
		return nil, err
	}

	if existing, err := s.friendRepo.GetBetween(ctx, requesterID, addresseeID); err == nil {
		if existing.Status == models.FriendshipStatusAccepted {
			return nil, models.NewConflictError("You are already friends")
		}
		return nil, models.NewConflictError("A friend request is already pending")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, addresseeID, requesterID, models.NotificationFriendRequest,
		fmt.Sprintf("%s sent you a friend request", s.displayName(ctx, requesterID)),
		&f.ID)
	return f, nil
}

// Accept confirms a pending request addressed to userID.
func (s *FriendService) Accept(ctx context.Context, userID, friendshipID uint) (*models.Friendship, error) {
	f, err := s.friendRepo.GetByID(ctx, friendshipID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Friend request", friendshipID)
	}
	if err != nil {
		return nil, err
	}
	if f.AddresseeID != userID {
		return nil, models.NewForbiddenError("Only the recipient can accept a friend request")
	}
	if f.Status == models.FriendshipStatusAccepted {
		return f, nil
	}

	if err := s.friendRepo.UpdateStatus(ctx, friendshipID, models.FriendshipStatusAccepted); err != nil {
		return nil, err
	}
	f.Status = models.FriendshipStatusAccepted

	s.notifier.Notify(ctx, f.RequesterID, userID, models.NotificationFriendAccept,
		fmt.Sprintf("%s accepted your friend request", s.displayName(ctx, userID)),
		&f.ID)
	return f, nil
}

// Reject removes a pending request addressed to userID.
func (s *FriendService) Reject(ctx context.Context, userID, friendshipID uint) error {
	f, err := s.friendRepo.GetByID(ctx, friendshipID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Friend request", friendshipID)
	}
	if err != nil {
		return err
	}
	if f.AddresseeID != userID {
		return models.NewForbiddenError("Only the recipient can reject a friend request")
	}
	return s.friendRepo.Delete(ctx, friendshipID)
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

func (s *FriendService) ListPending(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.ListPending(ctx, userID)
}

func (s *FriendService) displayName(ctx context.Context, userID uint) string {
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		return user.Username
	}
	return "Someone"
}
