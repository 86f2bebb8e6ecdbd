package server

import (
	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// InviteToGroup handles POST /api/groups/:id/invitations
//
// The response is a per-recipient outcome list; a skipped recipient is a
// normal outcome, not an error for the whole batch.
func (s *Server) InviteToGroup(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}

	var req struct {
		RecipientIDs []uint `json:"recipient_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	outcomes, err := s.invites.Invite(c.Context(), groupID, currentUserID(c), req.RecipientIDs)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"results": outcomes})
}

// AcceptInvitation handles POST /api/groups/:id/invitations/:invitationId/accept
func (s *Server) AcceptInvitation(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	invitationID, err := paramID(c, "invitationId")
	if err != nil {
		return respondErr(c, err)
	}

	if err := s.invites.Accept(c.Context(), groupID, currentUserID(c), invitationID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invitation accepted"})
}

// DeclineInvitation handles POST /api/groups/:id/invitations/:invitationId/decline
func (s *Server) DeclineInvitation(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	invitationID, err := paramID(c, "invitationId")
	if err != nil {
		return respondErr(c, err)
	}

	if err := s.invites.Decline(c.Context(), groupID, currentUserID(c), invitationID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invitation declined"})
}
