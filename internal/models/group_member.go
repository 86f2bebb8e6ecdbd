package models

import "time"

// GroupMemberRole defines a member's role within a group.
type GroupMemberRole string

const (
	// GroupRoleModerator marks a member with moderation privileges.
	GroupRoleModerator GroupMemberRole = "moderator"
	// GroupRoleMember is the default role for joined users.
	GroupRoleMember GroupMemberRole = "member"
)

// GroupMember is one (user, joinedAt) membership record.
//
// Historical rows sometimes carry only the expanded User association with a
// zero UserID column. ResolvedUserID normalizes both shapes; nothing outside
// this method should branch on which shape a row has.
type GroupMember struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	GroupID  uint            `gorm:"not null;index" json:"group_id"`
	UserID   uint            `gorm:"index" json:"user_id"`
	User     *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     GroupMemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (GroupMember) TableName() string {
	return "group_members"
}

// ResolvedUserID returns the canonical user identity for this record,
// regardless of whether it was stored as a bare id or an expanded user.
// Returns 0 when the record carries no usable identity.
func (m GroupMember) ResolvedUserID() uint {
	if m.UserID != 0 {
		return m.UserID
	}
	if m.User != nil {
		return m.User.ID
	}
	return 0
}
