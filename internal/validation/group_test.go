package validation

import (
	"errors"
	"strings"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGroupInput(t *testing.T) {
	tests := []struct {
		name        string
		groupName   string
		description string
		category    string
		wantErr     string
	}{
		{"valid", "Dune Readers", "We read Dune.", "Science Fiction", ""},
		{"empty name", "   ", "desc", "Poetry", "name is required"},
		{"long name", strings.Repeat("a", 101), "desc", "Poetry", "name too long"},
		{"empty description", "Group", "  ", "Poetry", "description is required"},
		{"long description", "Group", strings.Repeat("a", 1001), "Poetry", "description too long"},
		{"unknown category", "Group", "desc", "Gardening", "Unknown group category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupInput(tt.groupName, tt.description, tt.category)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantErr)
		})
	}
}
