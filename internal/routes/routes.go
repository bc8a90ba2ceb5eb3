package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/config"
	"github.com/example/dasturxon/internal/handlers"
	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	notifier := services.NewNotifierService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	otp := services.NewOTPService(db, cfg.OTPExpires, cfg.OTPLength)
	perms := services.NewPermissionService(db)
	orderService := services.NewOrderService(db, notifier)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)

	authHandler := handlers.NewAuthHandler(db, cfg, otp)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	customerOrderHandler := handlers.NewCustomerOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/merchant/send-login-otp", authHandler.SendMerchantOTP)
	auth.Post("/merchant/verify-login-otp", authHandler.VerifyMerchantOTP)
	auth.Post("/customer/send-login-otp", authHandler.SendCustomerOTP)
	auth.Post("/customer/verify-login-otp", authHandler.VerifyCustomerOTP)
	auth.Post("/admin/login", authHandler.AdminLogin)
	auth.Get("/me", middleware.Auth(cfg, db), authHandler.Me)
	auth.Post("/logout", middleware.Auth(cfg, db), authHandler.Logout)

	// Merchant catalog routes
	merchant := api.Group("", middleware.Auth(cfg, db, utils.KindMerchant))

	categories := merchant.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Post("/reorder", categoryHandler.Reorder)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Patch("/:id/status", categoryHandler.SetStatus)

	products := merchant.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/out-of-stock", productHandler.OutOfStock)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/status", productHandler.SetStatus)
	products.Patch("/:id/stock", productHandler.SetStock)

	// Merchant order routes
	orders := merchant.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Post("/:id/reject", orderHandler.Reject)
	orders.Post("/:id/preparing", orderHandler.Preparing)
	orders.Post("/:id/ready", orderHandler.Ready)
	orders.Post("/:id/out-for-delivery", orderHandler.OutForDelivery)
	orders.Post("/:id/delivered", orderHandler.Delivered)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Customer routes
	customer := api.Group("/customer", middleware.Auth(cfg, db, utils.KindCustomer))
	customer.Post("/orders", customerOrderHandler.Place)
	customer.Get("/orders", customerOrderHandler.List)
	customer.Get("/orders/:id", customerOrderHandler.Get)

	// Admin resource routes
	admin := api.Group("/admin",
		middleware.Auth(cfg, db, utils.KindAdmin),
		middleware.LoadPermissions(perms),
	)

	admin.Get("/dashboard", middleware.RequirePermission("view_dashboard"), adminHandler.DashboardStats)

	admin.Get("/admins", middleware.RequirePermission("view_any_admin"), adminHandler.ListAdmins)
	admin.Post("/admins", middleware.RequirePermission("create_admin"), adminHandler.CreateAdmin)
	admin.Put("/admins/:id", middleware.RequirePermission("update_admin"), adminHandler.UpdateAdmin)
	admin.Delete("/admins/:id", middleware.RequirePermission("delete_admin"), adminHandler.DeleteAdmin)

	admin.Get("/roles", middleware.RequirePermission("view_any_role"), adminHandler.ListRoles)
	admin.Post("/roles", middleware.RequirePermission("create_role"), adminHandler.CreateRole)
	admin.Put("/roles/:id", middleware.RequirePermission("update_role"), adminHandler.UpdateRole)
	admin.Delete("/roles/:id", middleware.RequirePermission("delete_role"), adminHandler.DeleteRole)
	admin.Get("/permissions", middleware.RequirePermission("view_any_role"), adminHandler.ListPermissions)

	admin.Get("/merchants", middleware.RequirePermission("view_any_merchant"), adminHandler.ListMerchants)
	admin.Post("/merchants/:id/approve", middleware.RequirePermission("approve_merchant"), adminHandler.ApproveMerchant)
	admin.Post("/merchants/:id/suspend", middleware.RequirePermission("suspend_merchant"), adminHandler.SuspendMerchant)
	admin.Post("/merchants/:id/reinstate", middleware.RequirePermission("suspend_merchant"), adminHandler.ReinstateMerchant)

	admin.Get("/customers", middleware.RequirePermission("view_any_customer"), adminHandler.ListCustomers)
	admin.Patch("/customers/:id/status", middleware.RequirePermission("update_customer"), adminHandler.UpdateCustomerStatus)

	admin.Get("/orders", middleware.RequirePermission("view_any_order"), adminHandler.ListAllOrders)
	admin.Get("/products", middleware.RequirePermission("view_any_product"), adminHandler.ListAllProducts)
}
