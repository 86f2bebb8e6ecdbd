package models

import "time"

// NotificationType tags what kind of event a feed entry describes.
type NotificationType string

const (
	// NotificationFriendRequest is sent when a friend request arrives.
	NotificationFriendRequest NotificationType = "friend_request"
	// NotificationFriendAccept is sent when a friend request is accepted.
	NotificationFriendAccept NotificationType = "friend_accept"
	// NotificationNewFollower is sent when someone follows a user.
	NotificationNewFollower NotificationType = "new_follower"
	// NotificationGroupInvite is sent when a group invitation is created.
	NotificationGroupInvite NotificationType = "group_invite"
	// NotificationGroupInviteAccepted is sent to the inviter on acceptance.
	NotificationGroupInviteAccepted NotificationType = "group_invite_accepted"
	// NotificationGroupInviteDeclined is sent to the inviter on decline.
	NotificationGroupInviteDeclined NotificationType = "group_invite_declined"
	// NotificationPostLike is sent to a post's author when it is liked.
	NotificationPostLike NotificationType = "post_like"
	// NotificationPostComment is sent to a post's author on a new comment.
	NotificationPostComment NotificationType = "post_comment"
	// NotificationCommentLike is sent to a comment's author when it is liked.
	NotificationCommentLike NotificationType = "comment_like"
	// NotificationCommentReply is sent to the immediate parent's author on a reply.
	NotificationCommentReply NotificationType = "comment_reply"
	// NotificationReplyLike is sent to a reply's author when it is liked.
	NotificationReplyLike NotificationType = "reply_like"
)

// Notification is one append-only feed entry. Workflow state (invitations)
// lives in Invitation, not here; feed entries are never mutated apart from
// the read flag.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	SenderID    uint             `gorm:"not null" json:"sender_id"`
	Sender      *User            `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Type        NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	RelatedID   *uint            `json:"related_id,omitempty"`
	IsRead      bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
