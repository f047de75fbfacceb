package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/service/form"
	"citizen-portal/internal/service/task"
)

type TaskHandler struct {
	taskService task.Service
	formService form.Service
}

func NewTaskHandler(taskService task.Service, formService form.Service) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		formService: formService,
	}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.taskService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrNameRequired):
			return middleware.BadRequest("Name is required")
		case errors.Is(err, task.ErrAppNotFound):
			return middleware.NotFound("App not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid task ID")
	}

	detail, err := h.taskService.Get(c.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return middleware.NotFound("Task not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}
	params.Validate()

	result, err := h.taskService.List(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TaskHandler) CompleteItem(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	taskID, itemID, err := taskItemIDs(c)
	if err != nil {
		return err
	}

	detail, err := h.taskService.CompleteItem(c.Context(), userID, taskID, itemID)
	if err != nil {
		return taskError(err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *TaskHandler) CompleteAll(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid task ID")
	}

	detail, err := h.taskService.CompleteAll(c.Context(), userID, taskID)
	if err != nil {
		return taskError(err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *TaskHandler) RemoveItem(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	taskID, itemID, err := taskItemIDs(c)
	if err != nil {
		return err
	}

	detail, err := h.taskService.RemoveItem(c.Context(), userID, taskID, itemID)
	if err != nil {
		return taskError(err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

// UploadForm attaches a pre-filled PDF to a checklist item.
func (h *TaskHandler) UploadForm(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	taskID, itemID, err := taskItemIDs(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer file.Close()

	formKey, err := h.formService.Upload(c.Context(), userID, taskID, itemID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, form.ErrFormNotFound) {
			return middleware.NotFound("Task item not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"form_key": formKey,
	})
}

// DownloadForm returns a short-lived link to the item's stored form.
func (h *TaskHandler) DownloadForm(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	taskID, itemID, err := taskItemIDs(c)
	if err != nil {
		return err
	}

	url, err := h.formService.DownloadURL(c.Context(), userID, taskID, itemID)
	if err != nil {
		if errors.Is(err, form.ErrFormNotFound) {
			return middleware.NotFound("Form not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": url,
	})
}

func taskItemIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.BadRequest("Invalid task ID")
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.BadRequest("Invalid item ID")
	}
	return taskID, itemID, nil
}

func taskError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return middleware.NotFound("Task not found")
	case errors.Is(err, task.ErrTaskItemNotFound):
		return middleware.NotFound("Task item not found")
	case errors.Is(err, task.ErrTaskCompleted):
		return middleware.Conflict("Task is already completed")
	}
	return err
}
