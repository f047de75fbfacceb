package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/service/settings"
)

type SettingHandler struct {
	settingsService settings.Service
}

func NewSettingHandler(settingsService settings.Service) *SettingHandler {
	return &SettingHandler{settingsService: settingsService}
}

func (h *SettingHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.settingsService.List(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"settings": list,
	})
}

func (h *SettingHandler) Add(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.NotificationSettingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	setting, err := h.settingsService.Add(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidDeliveryType) {
			return middleware.BadRequest("Invalid delivery type")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(setting)
}

func (h *SettingHandler) Remove(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	settingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid setting ID")
	}

	if err := h.settingsService.Remove(c.Context(), userID, settingID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Setting removed",
	})
}

// Replace swaps the whole preference set in one request, the shape a
// settings form submits.
func (h *SettingHandler) Replace(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input struct {
		Settings []domain.NotificationSettingInput `json:"settings"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	list, err := h.settingsService.Replace(c.Context(), userID, input.Settings)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidDeliveryType) {
			return middleware.BadRequest("Invalid delivery type")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"settings": list,
	})
}
