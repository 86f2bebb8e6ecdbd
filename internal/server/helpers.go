package server

import (
	"strconv"

	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondErr maps an application error onto its HTTP status and writes the
// standard error envelope.
func respondErr(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// paramID parses a numeric path parameter, responding 400 on garbage.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// pagination reads page/limit query parameters with sane defaults.
func pagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
