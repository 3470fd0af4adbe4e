// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"morgenstar/config"
	"morgenstar/internal/delivery/api/middleware"
	"morgenstar/internal/delivery/api/router/handler"
	"morgenstar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const defaultUploadsPrefix = "/uploads"

type RouterParams struct {
	fx.In

	HealthHandler     *handler.HealthHandler
	CartHandler       *handler.CartHandler
	CatalogHandler    *handler.CatalogHandler
	CouponHandler     *handler.CouponHandler
	NewsletterHandler *handler.NewsletterHandler
	UserHandler       *handler.UserHandler
	OrderHandler      *handler.OrderHandler
	WishlistHandler   *handler.WishlistHandler
	DeviceHandler     *handler.DeviceHandler
	PaymentHandler    *handler.PaymentHandler
	AdminHandler      *handler.AdminHandler
	UploadHandler     *handler.UploadHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	auth := p.AuthMiddleware.Authenticate
	adminOnly := p.AuthMiddleware.RequireRole(entity.RoleAdmin)

	e.GET("/health", p.HealthHandler.Health)
	e.GET(r.uploadsPrefix()+"/*", p.UploadHandler.Serve)

	api := e.Group("/api")
	api.GET("/db-ping", p.HealthHandler.DBPing)

	// Anonymous cart, identified by cookie
	api.GET("/cart", p.CartHandler.GetCart)
	api.POST("/cart", p.CartHandler.AddItem)
	api.PUT("/cart", p.CartHandler.UpdateItem)
	api.DELETE("/cart", p.CartHandler.DeleteItem)

	// Catalogue
	api.GET("/products", p.CatalogHandler.ListProducts)
	api.GET("/products/featured", p.CatalogHandler.FeaturedProducts)
	api.GET("/products/:slug", p.CatalogHandler.GetProduct)
	api.GET("/search", p.CatalogHandler.Search)
	api.GET("/brands", p.CatalogHandler.ListBrands)
	api.GET("/categories", p.CatalogHandler.ListCategories)

	api.GET("/coupons", p.CouponHandler.ListActive)
	api.POST("/coupons", p.CouponHandler.Validate)

	api.POST("/newsletter", p.NewsletterHandler.Subscribe)
	api.DELETE("/newsletter", p.NewsletterHandler.Unsubscribe)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", p.UserHandler.Register)
		authGroup.POST("/login", p.UserHandler.Login)
		authGroup.POST("/refresh", p.UserHandler.Refresh)
		authGroup.GET("/me", p.UserHandler.Me, auth)
	}

	ordersGroup := api.Group("/orders", auth)
	{
		ordersGroup.POST("", p.OrderHandler.PlaceOrder)
		ordersGroup.GET("", p.OrderHandler.ListOrders)
		ordersGroup.GET("/:id", p.OrderHandler.GetOrder)
		ordersGroup.GET("/:id/qr", p.OrderHandler.OrderQRCode)
	}

	wishlistGroup := api.Group("/wishlist", auth)
	{
		wishlistGroup.GET("", p.WishlistHandler.List)
		wishlistGroup.POST("", p.WishlistHandler.Add)
		wishlistGroup.DELETE("", p.WishlistHandler.Remove)
	}

	devicesGroup := api.Group("/devices", auth)
	{
		devicesGroup.POST("", p.DeviceHandler.RegisterDevice)
		devicesGroup.GET("", p.DeviceHandler.GetUserDevices)
		devicesGroup.PUT("/:id/token", p.DeviceHandler.UpdateFCMToken)
		devicesGroup.DELETE("/:id", p.DeviceHandler.DeactivateDevice)
	}

	api.POST("/payments/create-intent", p.PaymentHandler.CreatePaymentIntent, auth)
	// Authenticated by the Stripe-Signature header
	api.POST("/webhooks/stripe", p.PaymentHandler.StripeWebhook)

	adminGroup := api.Group("/admin", auth, adminOnly)
	{
		adminGroup.GET("/stats", p.AdminHandler.Stats)
		adminGroup.GET("/orders", p.AdminHandler.ListOrders)
		adminGroup.GET("/orders/:id", p.AdminHandler.GetOrder)
		adminGroup.PUT("/orders/:id", p.AdminHandler.UpdateOrderStatus)
		adminGroup.GET("/products", p.AdminHandler.ListProducts)
		adminGroup.POST("/products", p.AdminHandler.CreateProduct)
		adminGroup.PUT("/variants/:id", p.AdminHandler.UpdateVariant)
		adminGroup.POST("/coupons", p.CouponHandler.CreateCoupon)
		adminGroup.GET("/newsletter", p.AdminHandler.ListNewsletterSubscribers)
	}

	api.POST("/upload", p.UploadHandler.Upload, auth, adminOnly)
}

func (r *router) uploadsPrefix() string {
	if storage := r.params.Config.Storage; storage != nil && storage.PublicPrefix != "" {
		return "/" + strings.Trim(storage.PublicPrefix, "/")
	}

	return defaultUploadsPrefix
}
