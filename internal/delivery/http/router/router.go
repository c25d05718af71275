// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"unibite/internal/delivery/http/middleware"
	"unibite/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	DashboardHandler *handler.DashboardHandler
	UserHandler      *handler.UserHandler
	ShopHandler      *handler.ShopHandler
	OrderHandler     *handler.OrderHandler
	PartnerHandler   *handler.PartnerHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	auth      *handler.AuthHandler
	dashboard *handler.DashboardHandler
	users     *handler.UserHandler
	shops     *handler.ShopHandler
	orders    *handler.OrderHandler
	partners  *handler.PartnerHandler
	authMW    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:      params.AuthHandler,
		dashboard: params.DashboardHandler,
		users:     params.UserHandler,
		shops:     params.ShopHandler,
		orders:    params.OrderHandler,
		partners:  params.PartnerHandler,
		authMW:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes drive the login chain; only session and logout make sense
	// without a token, and the chain itself guards its own stage order.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.auth.Login)
		authGroup.POST("/2fa", r.auth.SecondFactor)
		authGroup.POST("/device", r.auth.ConfirmDevice)
		authGroup.POST("/logout", r.auth.Logout)
		authGroup.GET("/session", r.auth.Session)
	}

	// Everything under /admin requires a valid access token.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMW.Authenticate)
	{
		adminGroup.GET("/stats", r.dashboard.Stats)
		adminGroup.GET("/earnings", r.dashboard.Earnings)
		adminGroup.GET("/logs", r.dashboard.SystemLogs)
		adminGroup.GET("/settings", r.dashboard.Settings)
		adminGroup.PATCH("/settings", r.dashboard.UpdateSetting)
		adminGroup.POST("/refresh", r.dashboard.Refresh)
		adminGroup.POST("/clear-cache", r.dashboard.ClearCache)
		adminGroup.POST("/reset-system", r.dashboard.ResetSystem)

		adminGroup.GET("/users", r.users.List)
		adminGroup.POST("/users", r.users.Add)
		adminGroup.POST("/users/:id/block", r.users.Block)
		adminGroup.POST("/users/:id/unblock", r.users.Unblock)
		adminGroup.DELETE("/users/:id", r.users.Delete)

		adminGroup.GET("/shops", r.shops.List)
		adminGroup.POST("/shops", r.shops.Add)
		adminGroup.POST("/shops/credential-qr", r.shops.CredentialQR)
		adminGroup.PATCH("/shops/:id", r.shops.Edit)
		adminGroup.POST("/shops/:id/toggle", r.shops.Toggle)
		adminGroup.DELETE("/shops/:id", r.shops.Delete)
		adminGroup.PUT("/shops/:id/menu", r.shops.ReplaceMenu)
		adminGroup.POST("/shops/:id/menu", r.shops.AddMenuItem)
		adminGroup.POST("/shops/:id/menu/:itemId/toggle", r.shops.ToggleMenuItem)
		adminGroup.DELETE("/shops/:id/menu/:itemId", r.shops.DeleteMenuItem)

		adminGroup.GET("/orders", r.orders.List)
		adminGroup.PATCH("/orders/:id/status", r.orders.UpdateStatus)

		adminGroup.GET("/partners", r.partners.List)
		adminGroup.POST("/partners", r.partners.Add)
		adminGroup.POST("/partners/:id/block", r.partners.Block)
		adminGroup.DELETE("/partners/:id", r.partners.Remove)
	}
}
