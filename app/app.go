package app

import (
	"fmt"
	"net/http"

	"vendor-collective/app/controller"
	"vendor-collective/app/router"
	"vendor-collective/config"
	"vendor-collective/db"
	"vendor-collective/repository"
	"vendor-collective/service"
)

// Initialize wires the database, repositories, services and controllers and
// returns the HTTP handler to serve.
func Initialize(cfg *config.Configuration) (http.Handler, error) {
	// Initialize database connection
	if err := db.InitDB(cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()
	routeRepo := repository.NewRouteRepository()
	profileRepo := repository.NewProfileRepository()
	applicationRepo := repository.NewApplicationRepository()

	// Initialize services
	notificationService := service.NewNotificationService(cfg.Notifications)

	// Create controllers
	controllers := &router.Controllers{
		Product:     controller.NewProductController(productRepo),
		Cart:        controller.NewCartController(cartRepo),
		Order:       controller.NewOrderController(orderRepo, profileRepo, notificationService, cfg.Finalize.SharedSecret),
		AgentRoute:  controller.NewAgentRouteController(routeRepo),
		Wallet:      controller.NewWalletController(profileRepo),
		Application: controller.NewApplicationController(applicationRepo),
		Admin:       controller.NewAdminController(profileRepo),
	}

	return router.SetupRoutes(controllers), nil
}
