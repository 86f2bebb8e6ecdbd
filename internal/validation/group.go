package validation

import (
	"strings"

	"bookclub/internal/models"
)

const (
	maxGroupNameLen        = 100
	maxGroupDescriptionLen = 1000
)

// ValidateGroupInput checks group creation fields. Returns a validation
// AppError naming the first problem found.
func ValidateGroupInput(name, description, category string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("Group name is required")
	}
	if len(name) > maxGroupNameLen {
		return models.NewValidationError("Group name too long (max 100 characters)")
	}
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("Group description is required")
	}
	if len(description) > maxGroupDescriptionLen {
		return models.NewValidationError("Group description too long (max 1000 characters)")
	}
	if !validCategory(category) {
		return models.NewValidationError("Unknown group category")
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range models.GroupCategories {
		if c == category {
			return true
		}
	}
	return false
}
