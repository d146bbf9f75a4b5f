package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/storage"
)

const imageField = "image"

// ImageHandler accepts listing image uploads.
type ImageHandler struct {
	store ports.ImageStore
}

func NewImageHandler(store ports.ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// Upload stores a PNG or JPEG and returns its key and a URL usable as a
// listing image reference.
//
// @Summary      Upload listing image
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "PNG or JPEG, at most 10 MB"
// @Success      201    {object}  imageResponse
// @Failure      401    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /products/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	if !actorFrom(c).Authenticated() {
		return domain.ErrUnauthenticated
	}

	header, err := c.FormFile(imageField)
	if err != nil {
		return fmt.Errorf("%s file is required: %w", imageField, domain.ErrValidation)
	}
	contentType, err := storage.ValidateImage(header)
	if err != nil {
		return err
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	ctx := c.Request().Context()
	key, err := h.store.Upload(ctx, header.Filename, contentType, file)
	if err != nil {
		return err
	}
	url, err := h.store.URL(ctx, key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, imageResponse{Key: key, URL: url})
}
