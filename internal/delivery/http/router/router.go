// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	CatalogHandler  *handler.CatalogHandler
	OrderHandler    *handler.OrderHandler
	VendorHandler   *handler.VendorHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
	ErrorMiddleware *middleware.ErrorMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	catalogHandler  *handler.CatalogHandler
	orderHandler    *handler.OrderHandler
	vendorHandler   *handler.VendorHandler
	adminHandler    *handler.AdminHandler
	authMiddleware  *middleware.AuthMiddleware
	errorMiddleware *middleware.ErrorMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		catalogHandler:  params.CatalogHandler,
		orderHandler:    params.OrderHandler,
		vendorHandler:   params.VendorHandler,
		adminHandler:    params.AdminHandler,
		authMiddleware:  params.AuthMiddleware,
		errorMiddleware: params.ErrorMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = r.errorMiddleware.HandleHTTPError

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Public storefront, no authentication
	publicGroup := e.Group("/public")
	{
		publicGroup.GET("/products", r.catalogHandler.ListPublicProducts)
	}

	// Order routes for authenticated customers
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	orderGroup.Use(r.authMiddleware.RequireRole(entity.RoleCustomer))
	{
		orderGroup.POST("", r.orderHandler.PlaceOrder)
		orderGroup.GET("/me", r.orderHandler.MyOrders)
	}

	// Vendor routes that require authentication and the vendor role
	vendorGroup := e.Group("/vendor")
	vendorGroup.Use(r.authMiddleware.Authenticate)
	vendorGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor))
	{
		vendorGroup.GET("/me", r.vendorHandler.Me)
		vendorGroup.GET("/products", r.vendorHandler.ListProducts)
		vendorGroup.POST("/products", r.vendorHandler.AddProduct)
		vendorGroup.PUT("/products/:id", r.vendorHandler.UpdateProduct)
		vendorGroup.DELETE("/products/:id", r.vendorHandler.DeleteProduct)
		vendorGroup.GET("/earnings", r.vendorHandler.Earnings)
	}

	// Admin back office
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/vendors", r.adminHandler.ListVendors)
		adminGroup.PATCH("/vendors/:id/approve", r.adminHandler.ApproveVendor)
		adminGroup.PATCH("/vendors/:id/reject", r.adminHandler.RejectVendor)

		adminGroup.GET("/products", r.adminHandler.ListProducts)
		adminGroup.PATCH("/products/:id/approve", r.adminHandler.ApproveProduct)
		adminGroup.PATCH("/products/:id/reject", r.adminHandler.RejectProduct)
		adminGroup.PATCH("/products/:id/visibility", r.adminHandler.SetProductVisibility)

		adminGroup.POST("/settlements/generate", r.adminHandler.GenerateSettlement)
		adminGroup.GET("/settlements", r.adminHandler.ListSettlements)
		adminGroup.PATCH("/settlements/:id/pay", r.adminHandler.MarkSettlementPaid)
	}
}
