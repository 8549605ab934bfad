package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vendor-collective/app/controller"
	"vendor-collective/app/middleware"
	"vendor-collective/models"
)

// Controllers bundles every HTTP controller for route registration.
type Controllers struct {
	Product     *controller.ProductController
	Cart        *controller.CartController
	Order       *controller.OrderController
	AgentRoute  *controller.AgentRouteController
	Wallet      *controller.WalletController
	Application *controller.ApplicationController
	Admin       *controller.AdminController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the chi router. The finalize trigger and the health
// check sit outside the identity middleware; everything else requires the
// gateway's X-User-Id header.
func SetupRoutes(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/ping", pingHandler)

	// Scheduler-only trigger, guarded by X-Internal-Secret instead of a
	// user identity.
	r.Post("/orders/finalize-and-route", controllers.Order.FinalizeAndRoute)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity)

		// Catalog
		r.Get("/products", controllers.Product.ListAvailable)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleSupplier))
			r.Post("/products", controllers.Product.Create)
			r.Get("/products/mine", controllers.Product.ListMine)
			r.Put("/products/{id}", controllers.Product.Update)
			r.Delete("/products/{id}", controllers.Product.Delete)
			r.Post("/deals/products/{productID}", controllers.Product.CreateDeal)
			r.Put("/deals/{id}", controllers.Product.UpdateDeal)
			r.Delete("/deals/{id}", controllers.Product.DeleteDeal)
		})

		// Vendor cart and tracking
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleVendor))
			r.Post("/cart/items", controllers.Cart.AddItem)
			r.Get("/cart/me", controllers.Cart.GetCart)
			r.Put("/cart/items/{id}", controllers.Cart.UpdateQuantity)
			r.Delete("/cart/items/{id}", controllers.Cart.RemoveItem)
			r.Get("/orders/me/latest-status", controllers.Order.LatestStatus)
		})

		// Wallet (any role)
		r.Get("/wallet/me", controllers.Wallet.Balance)
		r.Post("/wallet/me/topup", controllers.Wallet.TopUp)

		// Agent routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAgent))
			r.Get("/agent-routes/me/today", controllers.AgentRoute.TodayRoute)
			r.Get("/agent-routes/me/progress", controllers.AgentRoute.Progress)
			r.Get("/agent-routes/stops/{id}/manifest", controllers.AgentRoute.StopManifest)
			r.Put("/agent-routes/stops/{id}/status", controllers.AgentRoute.UpdateStopStatus)
		})

		// Role applications
		r.Post("/applications", controllers.Application.Create)
		r.Get("/applications/me", controllers.Application.ListMine)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/applications", controllers.Application.List)
			r.Put("/applications/{id}", controllers.Application.Review)
			r.Get("/admin/users", controllers.Admin.ListUsers)
		})
	})

	return r
}
