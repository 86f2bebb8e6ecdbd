package models

import "time"

// FriendshipStatus represents the status of a friendship request.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a pending friendship request.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an accepted friendship request.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship represents a friendship relationship between two users.
// Direction is preserved to distinguish sent vs received pending requests.
type Friendship struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"requester_id"`
	AddresseeID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee *User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM.
func (Friendship) TableName() string {
	return "friendships"
}
