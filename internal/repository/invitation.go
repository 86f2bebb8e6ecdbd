package repository

import (
	"context"
	"time"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// InvitationRepository defines interface for group invitation operations
type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	GetByID(ctx context.Context, id uint) (*models.Invitation, error)
	GetPending(ctx context.Context, groupID, inviterID, recipientID uint) (*models.Invitation, error)
	Resolve(ctx context.Context, id uint, status models.InvitationStatus, at time.Time) error
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invitationRepository) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.db.WithContext(ctx).First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetPending looks up an unresolved invitation for the exact
// (group, inviter, recipient) triple. A different member inviting the same
// recipient is a distinct workflow and does not match.
func (r *invitationRepository) GetPending(ctx context.Context, groupID, inviterID, recipientID uint) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND inviter_id = ? AND recipient_id = ? AND status = ?",
			groupID, inviterID, recipientID, models.InvitationStatusPending).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) Resolve(ctx context.Context, id uint, status models.InvitationStatus, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
