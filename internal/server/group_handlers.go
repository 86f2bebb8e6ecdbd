package server

import (
	"fmt"

	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	group, err := s.groups.CreateGroup(c.Context(), service.CreateGroupInput{
		CreatorID:   currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroup handles GET /api/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	group, err := s.groups.GetGroup(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(group)
}

// ListGroups handles GET /api/groups
func (s *Server) ListGroups(c *fiber.Ctx) error {
	page, limit := pagination(c)
	result, err := s.groups.ListGroups(c.Context(), service.ListGroupsInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(result)
}

// FeaturedGroups handles GET /api/groups/featured
func (s *Server) FeaturedGroups(c *fiber.Ctx) error {
	groups, err := s.groups.FeaturedGroups(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// PopularGroups handles GET /api/groups/popular
func (s *Server) PopularGroups(c *fiber.Ctx) error {
	groups, err := s.groups.PopularGroups(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// GroupCategories handles GET /api/groups/categories
func (s *Server) GroupCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": s.groups.Categories()})
}

// JoinGroup handles POST /api/groups/:id/join
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	group, err := s.groups.Join(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(group)
}

// LeaveGroup handles POST /api/groups/:id/leave
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.groups.Leave(c.Context(), id, currentUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Left the group"})
}

// UpdateGroupImages handles PUT /api/groups/:id/images
//
// The media storage boundary is an opaque URL producer: when a client posts
// raw upload intent instead of final URLs, fresh upload slots are minted
// under the configured base URL.
func (s *Server) UpdateGroupImages(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}

	var req struct {
		ImageURL      string `json:"image_url"`
		CoverImageURL string `json:"cover_image_url"`
		MintImage     bool   `json:"mint_image"`
		MintCover     bool   `json:"mint_cover"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	if req.MintImage {
		req.ImageURL = s.mintUploadURL("group-image")
	}
	if req.MintCover {
		req.CoverImageURL = s.mintUploadURL("group-cover")
	}
	if req.ImageURL == "" && req.CoverImageURL == "" {
		return respondErr(c, models.NewValidationError("Nothing to update"))
	}

	group, err := s.groups.UpdateImages(c.Context(), id, currentUserID(c), req.ImageURL, req.CoverImageURL)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(group)
}

func (s *Server) mintUploadURL(kind string) string {
	return fmt.Sprintf("%s/%s/%s", s.config.UploadBaseURL, kind, uuid.NewString())
}
