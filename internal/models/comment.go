package models

import "time"

// Comment is a top-level response to a post. Nested conversation under a
// comment is stored as Reply nodes rooted at the comment.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	Replies   []Reply   `gorm:"-" json:"replies,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "post_comments"
}
