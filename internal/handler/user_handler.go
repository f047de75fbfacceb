package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profileResponse(profile))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrEmailNotApproved):
			return middleware.Forbidden(err.Error())
		case errors.Is(err, user.ErrEmailExists):
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profileResponse(profile))
}

// GetSchemaOrgProfile serves the profile as a schema.org Person
// document for apps that consume structured data.
func (h *UserHandler) GetSchemaOrgProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	person, err := h.userService.SchemaOrgProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(person)
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.userService.DeleteAccount(c.Context(), userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account deleted",
	})
}

// profileResponse keeps phone numbers out of the raw struct encoding
// and serves them pretty-printed instead.
func profileResponse(u *domain.User) fiber.Map {
	return fiber.Map{
		"user":          u,
		"phone_number":  u.PhoneNumber(),
		"mobile_number": u.MobileNumber(),
	}
}
