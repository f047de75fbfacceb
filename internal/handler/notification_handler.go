package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Create accepts a notification on behalf of an app or the portal
// itself. Admin only.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	creatorID := middleware.GetCurrentUserID(c)
	notif, err := h.notificationService.Create(c.Context(), creatorID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubjectRequired),
			errors.Is(err, domain.ErrBodyRequired),
			errors.Is(err, domain.ErrReceivedAtRequired),
			errors.Is(err, domain.ErrUserIDRequired):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, notification.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, notification.ErrAppNotFound):
			return middleware.NotFound("App not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

func (h *NotificationHandler) ListDashboard(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}
	params.Validate()
	unreadOnly := c.QueryBool("unread_only")

	result, err := h.notificationService.ListDashboard(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notificationService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread_count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(c.Context(), userID, entryID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}
