package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friends.ListFriends(c.Context(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friends.ListPending(c.Context(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return respondErr(c, err)
	}
	f, err := s.friends.SendRequest(c.Context(), currentUserID(c), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := paramID(c, "requestId")
	if err != nil {
		return respondErr(c, err)
	}
	f, err := s.friends.Accept(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(f)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requestID, err := paramID(c, "requestId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.friends.Reject(c.Context(), currentUserID(c), requestID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend request rejected"})
}
