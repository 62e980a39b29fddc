package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"atelier/internal/delivery/http/response"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AssetHandler serves the admin media upload endpoints. Uploads arrive as
// multipart forms with the binary under the "file" field.
type AssetHandler struct {
	uc     usecase.AssetUsecase
	logger *slog.Logger
}

// NewAssetHandler is the constructor for AssetHandler, injected by Fx.
func NewAssetHandler(uc usecase.AssetUsecase, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{
		uc:     uc,
		logger: logger,
	}
}

// UploadImage adds one gallery image to a product.
func (h *AssetHandler) UploadImage(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	upload, closeFn, err := readUpload(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing or unreadable file field")
	}
	defer closeFn()

	output, err := h.uc.UploadImage(c.Request().Context(), productID, upload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Image uploaded")
}

// DeleteImage removes one gallery image.
func (h *AssetHandler) DeleteImage(c echo.Context) error {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid image id")
	}

	if err := h.uc.DeleteImage(c.Request().Context(), imageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Image deleted")
}

// orderInput carries the gallery reorder payload.
type orderInput struct {
	DisplayOrder int `json:"display_order"`
}

// ReorderImage moves an image to a new display order.
func (h *AssetHandler) ReorderImage(c echo.Context) error {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid image id")
	}

	var input *orderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := h.uc.ReorderImage(c.Request().Context(), imageID, input.DisplayOrder); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Image reordered")
}

// UploadVideo sets the product video.
func (h *AssetHandler) UploadVideo(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	upload, closeFn, err := readUpload(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing or unreadable file field")
	}
	defer closeFn()

	output, err := h.uc.UploadVideo(c.Request().Context(), productID, upload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Video uploaded")
}

// DeleteVideo removes the product video.
func (h *AssetHandler) DeleteVideo(c echo.Context) error {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid video id")
	}

	if err := h.uc.DeleteVideo(c.Request().Context(), videoID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Video deleted")
}

// readUpload extracts the "file" part of the multipart form.
func readUpload(c echo.Context) (*usecase.Upload, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	return &usecase.Upload{
		Filename:    header.Filename,
		ContentType: detectContentType(header),
		Size:        header.Size,
		Body:        src,
	}, func() { _ = src.Close() }, nil
}

func detectContentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}
