package models

import "time"

// LikeTarget identifies which kind of discussion item a like is attached to.
type LikeTarget string

const (
	// LikeTargetPost marks a like on a post.
	LikeTargetPost LikeTarget = "post"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTarget = "comment"
	// LikeTargetReply marks a like on a reply.
	LikeTargetReply LikeTarget = "reply"
)

// ValidLikeTarget reports whether t is a known like target kind.
func ValidLikeTarget(t LikeTarget) bool {
	switch t {
	case LikeTargetPost, LikeTargetComment, LikeTargetReply:
		return true
	}
	return false
}

// Like is a (user, target) marker. The composite unique index makes
// duplicates structurally impossible; toggling nevertheless removes every
// row for the pair before inserting, so legacy duplicates self-heal.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_like_user_target" json:"user_id"`
	TargetType LikeTarget `gorm:"type:varchar(20);not null;uniqueIndex:idx_like_user_target" json:"target_type"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_like_user_target" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}
