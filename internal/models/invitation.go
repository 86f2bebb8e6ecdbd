package models

import "time"

// InvitationStatus defines lifecycle states for a group invitation.
type InvitationStatus string

const (
	// InvitationStatusPending indicates the invitation is unresolved.
	InvitationStatusPending InvitationStatus = "pending"
	// InvitationStatusAccepted indicates the recipient joined the group.
	InvitationStatusAccepted InvitationStatus = "accepted"
	// InvitationStatusDeclined indicates the recipient declined.
	InvitationStatusDeclined InvitationStatus = "declined"
)

// Invitation is the workflow record for a friend-gated group invite.
// It resolves exactly once: pending -> accepted or pending -> declined.
// The recipient's feed entry for the invite is a separate Notification row.
type Invitation struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	GroupID     uint             `gorm:"not null;index" json:"group_id"`
	Group       *Group           `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	InviterID   uint             `gorm:"not null;index" json:"inviter_id"`
	Inviter     *User            `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	Status      InvitationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Invitation) TableName() string {
	return "group_invitations"
}

// Resolved reports whether the invitation has reached a terminal state.
func (i Invitation) Resolved() bool {
	return i.Status != InvitationStatusPending
}
