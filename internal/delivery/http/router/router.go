// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"giftlink/internal/delivery/http/middleware"
	"giftlink/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	GiftHandler    *handler.GiftHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	giftHandler    *handler.GiftHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		giftHandler:    params.GiftHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.PUT("/update", r.authHandler.UpdateProfile)
		authGroup.GET("/profile", r.authHandler.GetProfile, r.authMiddleware.Authenticate)
	}

	// Gift catalog routes
	giftGroup := api.Group("/gifts")
	{
		giftGroup.GET("", r.giftHandler.List)
		giftGroup.POST("", r.giftHandler.Create, r.authMiddleware.Authenticate)
		giftGroup.GET("/:id", r.giftHandler.Get)
		giftGroup.PUT("/:id", r.giftHandler.Update, r.authMiddleware.Authenticate)
		giftGroup.DELETE("/:id", r.giftHandler.Delete, r.authMiddleware.Authenticate)
		giftGroup.GET("/:id/qrcode", r.giftHandler.ShareQR)
	}

	// Search routes
	api.GET("/search", r.giftHandler.Search)
}
