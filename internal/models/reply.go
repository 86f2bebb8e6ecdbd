package models

import "time"

// Reply is one node of a comment's nested conversation tree.
//
// Replies form an arena: every node carries the id of its root comment and
// an optional parent reply reference. A nil ParentReplyID means the node
// hangs directly off the comment; otherwise it hangs off another reply.
// Depth is unbounded in storage; any display depth limit is a client concern.
type Reply struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PostID        uint   `gorm:"not null;index" json:"post_id"`
	CommentID     uint   `gorm:"not null;index" json:"comment_id"`
	ParentReplyID *uint  `gorm:"index" json:"parent_reply_id,omitempty"`
	AuthorID      uint   `gorm:"not null;index" json:"author_id"`
	Author        *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content       string `gorm:"type:text;not null" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this reply (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	Replies   []Reply   `gorm:"-" json:"replies,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Reply) TableName() string {
	return "comment_replies"
}
