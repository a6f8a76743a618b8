package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tasklist/internal/auth"
	apperrors "tasklist/internal/errors"
	"tasklist/internal/service"
)

// TaskHandler bundles task HTTP handlers.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a handler layer.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTaskRequest represents a task creation request. IsPublic defaults
// to true when omitted.
type CreateTaskRequest struct {
	Name     string `json:"name" validate:"required"`
	IsPublic *bool  `json:"is_public"`
}

// UpdateTaskRequest represents a partial task update.
type UpdateTaskRequest struct {
	Name     *string `json:"name"`
	IsPublic *bool   `json:"is_public"`
}

// ListPublicTasks godoc
// @Summary List public tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /publictasks [get]
func (h *TaskHandler) ListPublicTasks(c echo.Context) error {
	tasks, err := h.svc.ListPublicTasks(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admintasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing task name")
	}

	task, err := h.svc.CreateTask(c.Request().Context(), req.Name, req.IsPublic)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	if userID, ok := auth.CurrentUserID(c); ok {
		c.Logger().Debugf("task %d created by user %d", task.ID, userID)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "task created",
		"task":    task,
	})
}

// ListTasks godoc
// @Summary List all tasks regardless of visibility
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /admintasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.svc.ListTasks(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

// GetTask godoc
// @Summary Get task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admintasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	task, err := h.svc.GetTask(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

// UpdateTask godoc
// @Summary Update task fields
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admintasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.svc.UpdateTask(c.Request().Context(), id, service.TaskUpdate{
		Name:     req.Name,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "task updated",
		"task":    task,
	})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admintasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTask(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "task deleted"})
}
