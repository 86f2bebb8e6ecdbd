package service

import (
	"context"
	"errors"

	"bookclub/internal/cache"
	"bookclub/internal/models"
	"bookclub/internal/observability"
	"bookclub/internal/repository"

	"gorm.io/gorm"
)

// NotificationService owns the append-only notification feed. Writes are
// best-effort: Notify never returns an error to its caller.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// Notify appends a feed entry for recipientID. Self-directed events
// (recipient == sender) are silently skipped. Persistence failures are
// logged and counted but never propagated; the primary action that
// triggered the notification must not observe them.
func (s *NotificationService) Notify(ctx context.Context, recipientID, senderID uint, notifType models.NotificationType, message string, relatedID *uint) {
	if recipientID == 0 || recipientID == senderID {
		return
	}

	n := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		Message:     message,
		RelatedID:   relatedID,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		observability.NotifyFailure(ctx, string(notifType), recipientID, err)
		observability.NotificationWrites.WithLabelValues(string(notifType), "error").Inc()
		return
	}
	observability.NotificationWrites.WithLabelValues(string(notifType), "ok").Inc()

	// Best-effort wakeup for clients polling the feed.
	_ = cache.PublishUser(ctx, recipientID, n)
}

// List returns the recipient's feed, most recent first, bounded.
func (s *NotificationService) List(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	return s.notifRepo.ListByRecipient(ctx, recipientID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.notifRepo.CountUnread(ctx, recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uint) error {
	err := s.notifRepo.MarkRead(ctx, recipientID, notificationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Notification", notificationID)
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.notifRepo.MarkAllRead(ctx, recipientID)
}
