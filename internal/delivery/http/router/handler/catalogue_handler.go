package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"atelier/internal/delivery/http/response"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogueHandler serves the public, read-only catalogue endpoints.
// Everything here sees published products only.
type CatalogueHandler struct {
	uc     usecase.CatalogueUsecase
	logger *slog.Logger
}

// NewCatalogueHandler is the constructor for CatalogueHandler, injected by Fx.
func NewCatalogueHandler(uc usecase.CatalogueUsecase, logger *slog.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListProducts returns the published catalogue, newest first.
func (h *CatalogueHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListPublished(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViewList(products), "")
}

// ListFeatured returns the homepage selection of featured products.
func (h *CatalogueHandler) ListFeatured(c echo.Context) error {
	limit := usecase.DefaultFeaturedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return response.BadRequest(c, "INVALID_INPUT", "limit must be a positive integer")
		}
		limit = parsed
	}

	products, err := h.uc.ListFeatured(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViewList(products), "")
}

// GetProduct returns one published product with its gallery and video.
func (h *CatalogueHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	product, err := h.uc.GetByID(c.Request().Context(), id, usecase.ScopePublic)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "")
}
