package database

import "bookclub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Post{},
		&models.Comment{},
		&models.Reply{},
		&models.Like{},
		&models.Friendship{},
		&models.Invitation{},
		&models.Notification{},
	}
}
