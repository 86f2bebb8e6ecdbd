package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListNotifications handles GET /api/notifications
func (s *Server) ListNotifications(c *fiber.Ctx) error {
	items, err := s.notifs.List(c.Context(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"notifications": items})
}

// UnreadCount handles GET /api/notifications/unread-count
func (s *Server) UnreadCount(c *fiber.Ctx) error {
	count, err := s.notifs.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.notifs.MarkRead(c.Context(), currentUserID(c), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notifs.MarkAllRead(c.Context(), currentUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
