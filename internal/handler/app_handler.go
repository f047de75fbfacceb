package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/service/app"
)

type AppHandler struct {
	appService app.Service
}

func NewAppHandler(appService app.Service) *AppHandler {
	return &AppHandler{appService: appService}
}

func (h *AppHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAppInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.appService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		if errors.Is(err, app.ErrNameRequired) {
			return middleware.BadRequest("Name is required")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AppHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid app ID")
	}

	found, err := h.appService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrAppNotFound) {
			return middleware.NotFound("App not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *AppHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}
	params.Validate()

	result, err := h.appService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AppHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid app ID")
	}

	var input domain.UpdateAppInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.appService.Update(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrAppNotFound):
			return middleware.NotFound("App not found")
		case errors.Is(err, app.ErrNameRequired):
			return middleware.BadRequest("Name is required")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AppHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid app ID")
	}

	if err := h.appService.Delete(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		if errors.Is(err, app.ErrAppNotFound) {
			return middleware.NotFound("App not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "App deleted",
	})
}
