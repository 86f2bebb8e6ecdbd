package models

import "time"

// PostType tags the intent of a group post.
type PostType string

const (
	// PostTypeDiscussion is a general discussion thread.
	PostTypeDiscussion PostType = "discussion"
	// PostTypeRecommendation recommends a book to the group.
	PostTypeRecommendation PostType = "recommendation"
	// PostTypeSuggestion proposes the group's next read.
	PostTypeSuggestion PostType = "suggestion"
	// PostTypeAnnouncement is a moderator announcement.
	PostTypeAnnouncement PostType = "announcement"
)

// ValidPostType reports whether t is a known post type.
func ValidPostType(t PostType) bool {
	switch t {
	case PostTypeDiscussion, PostTypeRecommendation, PostTypeSuggestion, PostTypeAnnouncement:
		return true
	}
	return false
}

// Post is a discussion item inside a group.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	GroupID  uint     `gorm:"not null;index" json:"group_id"`
	Group    *Group   `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title    string   `gorm:"size:300;not null" json:"title"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	Type     PostType `gorm:"type:varchar(20);not null;default:'discussion';index" json:"type"`
	IsPinned bool     `gorm:"not null;default:false;index" json:"is_pinned"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "group_posts"
}
