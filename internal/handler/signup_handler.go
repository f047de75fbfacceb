package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/service/signup"
)

type SignupHandler struct {
	signupService signup.Service
}

func NewSignupHandler(signupService signup.Service) *SignupHandler {
	return &SignupHandler{signupService: signupService}
}

// Request is public: anyone can ask to be put on the allow-list.
func (h *SignupHandler) Request(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.signupService.Request(c.Context(), input.Email); err != nil {
		if errors.Is(err, signup.ErrEmailRequired) {
			return middleware.BadRequest("Email is required")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thanks! We'll let you know when your account is ready.",
	})
}

func (h *SignupHandler) Approve(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.signupService.Approve(c.Context(), input.Email); err != nil {
		if errors.Is(err, signup.ErrEmailRequired) {
			return middleware.BadRequest("Email is required")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Signup approved",
	})
}

func (h *SignupHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}
	params.Validate()

	result, err := h.signupService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
