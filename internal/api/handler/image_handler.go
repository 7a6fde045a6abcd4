package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/api/metrics"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// ImageHandler handles image upload and retrieval.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

type uploadImageResponse struct {
	ID string `json:"id"`
}

// Upload handles POST /api/images (manager/admin only). The image arrives as
// the multipart form field "file"; the declared content type must be one of
// png, jpeg, or webp.
//
// @Summary      Upload an image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  uploadImageResponse
// @Failure      400   {object}  map[string]any
// @Failure      415   {object}  map[string]any
// @Router       /api/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}

	image, err := h.service.Upload(c.Request().Context(), fh.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}

	metrics.ImageUploadBytes.Observe(float64(image.SizeBytes))
	return c.JSON(http.StatusCreated, uploadImageResponse{ID: image.ID})
}

// Get handles GET /api/images/:id, serving the stored bytes with the stored
// content type.
//
// @Summary      Get image data
// @Tags         images
// @Produce      image/webp
// @Param        id   path  string  true  "Image ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  map[string]any
// @Router       /api/images/{id} [get]
func (h *ImageHandler) Get(c echo.Context) error {
	image, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, image.ContentType, image.Data)
}
