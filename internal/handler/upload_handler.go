package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "tasklist/internal/errors"
	"tasklist/internal/service"
)

// UploadHandler handles authenticated file uploads.
type UploadHandler struct {
	svc service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload godoc
// @Summary Upload a file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNoFile)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	defer src.Close()

	path, err := h.svc.SaveFile(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "file uploaded",
		"file_path": path,
	})
}
