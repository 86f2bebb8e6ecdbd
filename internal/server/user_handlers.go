package server

import (
	"errors"

	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondErr(c, models.NewNotFoundError("User", currentUserID(c)))
	}
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	user, err := s.userRepo.GetByID(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondErr(c, models.NewNotFoundError("User", id))
	}
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return respondErr(c, models.NewValidationError("Search query is required"))
	}
	page, limit := pagination(c)

	users, err := s.userRepo.Search(c.Context(), query, limit, (page-1)*limit)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"users": users})
}
