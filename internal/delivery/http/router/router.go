// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"atelier/internal/delivery/http/middleware"
	"atelier/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	CatalogueHandler *handler.CatalogueHandler
	ProductHandler   *handler.ProductHandler
	AssetHandler     *handler.AssetHandler
	AccessGate       *middleware.AccessGate
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	catalogueHandler *handler.CatalogueHandler
	productHandler   *handler.ProductHandler
	assetHandler     *handler.AssetHandler
	accessGate       *middleware.AccessGate
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		catalogueHandler: params.CatalogueHandler,
		productHandler:   params.ProductHandler,
		assetHandler:     params.AssetHandler,
		accessGate:       params.AccessGate,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public catalogue, published products only. The static featured
	// route takes priority over the :id match.
	catalogueGroup := e.Group("/catalogue")
	{
		catalogueGroup.GET("", r.catalogueHandler.ListProducts)
		catalogueGroup.GET("/featured", r.catalogueHandler.ListFeatured)
		catalogueGroup.GET("/:id", r.catalogueHandler.GetProduct)
	}

	// Login sits outside the gate; a live admin session skips straight
	// to the dashboard instead.
	e.POST("/admin/login", r.authHandler.Login, r.accessGate.RedirectAuthenticated)

	// Everything else under /admin requires an admitted admin session
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.accessGate.Admit)
	{
		adminGroup.POST("/logout", r.authHandler.Logout)
		adminGroup.GET("/dashboard", r.productHandler.Dashboard)

		adminGroup.GET("/products", r.productHandler.ListProducts)
		adminGroup.POST("/products", r.productHandler.CreateProduct)
		adminGroup.GET("/products/:id", r.productHandler.GetProduct)
		adminGroup.PATCH("/products/:id", r.productHandler.UpdateProduct)
		adminGroup.PATCH("/products/:id/status", r.productHandler.SetStatus)
		adminGroup.DELETE("/products/:id", r.productHandler.DeleteProduct)

		adminGroup.POST("/products/:id/images", r.assetHandler.UploadImage)
		adminGroup.DELETE("/images/:id", r.assetHandler.DeleteImage)
		adminGroup.PATCH("/images/:id/order", r.assetHandler.ReorderImage)
		adminGroup.POST("/products/:id/video", r.assetHandler.UploadVideo)
		adminGroup.DELETE("/videos/:id", r.assetHandler.DeleteVideo)
	}
}
