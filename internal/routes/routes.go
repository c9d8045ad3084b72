package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/config"
	"github.com/example/qurbanku/internal/handlers"
	"github.com/example/qurbanku/internal/middleware"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, storage *services.StorageService, log *logrus.Logger) {
	wa := services.NewWhatsAppService(
		cfg.WhatsAppToken, cfg.WhatsAppBaseURL, cfg.WhatsAppVersion,
		cfg.WhatsAppPhoneID, cfg.WhatsAppOtpTemplate, cfg.WhatsAppAdminPhone, log)

	lc := parsers.NewLocale(cfg.AppLocale, cfg.Location, cfg.ParseStrict)

	authHandler := handlers.NewAuthHandler(db, cfg, wa, log)
	profileHandler := handlers.NewProfileHandler(db, lc)
	productHandler := handlers.NewProductHandler(db, lc)
	catalogHandler := handlers.NewCatalogHandler(db, lc)
	bannerHandler := handlers.NewBannerHandler(db, lc)
	orderHandler := handlers.NewOrderHandler(db, lc, wa, log)
	storageHandler := handlers.NewStorageHandler(storage)
	adminHandler := handlers.NewAdminHandler(db, lc)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/otp", authHandler.VerifyOtp)
	auth.Post("/otp/resend", authHandler.ResendOtp)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Storage
	api.Get("/storage", storageHandler.GetUploadURL)

	// Catalog browse
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/product-categories", catalogHandler.ListCategories)
	api.Get("/product-categories/:id", catalogHandler.GetCategory)
	api.Get("/services", catalogHandler.ListServices)
	api.Get("/services/:id", catalogHandler.GetService)
	api.Get("/warehouses", catalogHandler.ListWarehouses)
	api.Get("/warehouses/:id", catalogHandler.GetWarehouse)
	api.Get("/banners", bannerHandler.ListBanners)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(db, cfg))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	protected.Get("/me", profileHandler.GetMe)
	protected.Put("/me", profileHandler.UpdateMe)
	protected.Get("/me/addresses", profileHandler.ListAddresses)
	protected.Post("/me/addresses", profileHandler.CreateAddress)
	protected.Put("/me/addresses/:id", profileHandler.UpdateAddress)
	protected.Delete("/me/addresses/:id", profileHandler.DeleteAddress)

	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	// Dashboard routes
	admin := protected.Group("/admin", middleware.InternalOnly())
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)
	admin.Post("/product-categories", catalogHandler.CreateCategory)
	admin.Put("/product-categories/:id", catalogHandler.UpdateCategory)
	admin.Delete("/product-categories/:id", catalogHandler.DeleteCategory)
	admin.Post("/services", catalogHandler.CreateService)
	admin.Put("/services/:id", catalogHandler.UpdateService)
	admin.Delete("/services/:id", catalogHandler.DeleteService)
	admin.Post("/warehouses", catalogHandler.CreateWarehouse)
	admin.Put("/warehouses/:id", catalogHandler.UpdateWarehouse)
	admin.Delete("/warehouses/:id", catalogHandler.DeleteWarehouse)
	admin.Post("/banners", bannerHandler.CreateBanner)
	admin.Put("/banners/:id", bannerHandler.UpdateBanner)
	admin.Delete("/banners/:id", bannerHandler.DeleteBanner)
}
