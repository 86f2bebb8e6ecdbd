package server

import (
	"github.com/gofiber/fiber/v2"
)

// PromoteMember handles POST /api/groups/:id/promote/:userId
func (s *Server) PromoteMember(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	targetID, err := paramID(c, "userId")
	if err != nil {
		return respondErr(c, err)
	}

	group, err := s.groups.Promote(c.Context(), groupID, currentUserID(c), targetID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(group)
}

// DemoteMember handles POST /api/groups/:id/demote/:userId
func (s *Server) DemoteMember(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	targetID, err := paramID(c, "userId")
	if err != nil {
		return respondErr(c, err)
	}

	group, err := s.groups.Demote(c.Context(), groupID, currentUserID(c), targetID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(group)
}

// RemoveMember handles DELETE /api/groups/:id/members/:userId
func (s *Server) RemoveMember(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	targetID, err := paramID(c, "userId")
	if err != nil {
		return respondErr(c, err)
	}

	group, err := s.groups.RemoveMember(c.Context(), groupID, currentUserID(c), targetID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(group)
}

// PinPost handles POST /api/posts/:id/pin
func (s *Server) PinPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	post, err := s.posts.Pin(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// UnpinPost handles DELETE /api/posts/:id/pin
func (s *Server) UnpinPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	post, err := s.posts.Unpin(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}
