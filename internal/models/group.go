package models

import "time"

// Group represents a reading community owned by its creator.
//
// MemberCount is stored denormalized but is always re-derived from the
// member list whenever membership changes; LastActivity is bumped by every
// successful membership or discussion mutation.
type Group struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:120;not null" json:"name"`
	Description   string        `gorm:"type:text" json:"description"`
	Category      string        `gorm:"size:60;index" json:"category"`
	CreatorID     uint          `gorm:"not null;index" json:"creator_id"`
	Creator       *User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	ImageURL      string        `json:"image_url"`
	CoverImageURL string        `json:"cover_image_url"`
	MemberCount   int           `gorm:"not null;default:0" json:"member_count"`
	IsActive      bool          `gorm:"not null;default:true" json:"is_active"`
	LastActivity  time.Time     `json:"last_activity"`
	Members       []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

// GroupCategories is the fixed set of discoverable group categories.
var GroupCategories = []string{
	"Romance", "Science Fiction", "Short Stories", "Thrillers",
	"Fantasy", "Historical Fiction", "Young Adult", "Autobiography",
	"Self-Help", "Cooking", "Business", "Health & Fitness",
	"Mystery & Suspense", "Political Thriller", "Poetry", "Plays",
	"Action & Adventure", "Classic Fiction", "Non-Fiction",
}
