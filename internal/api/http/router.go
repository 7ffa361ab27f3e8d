package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/api/http/handlers"
	"github.com/spec-kit/petcare-service/internal/auth"
	"github.com/spec-kit/petcare-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Catalog        *handlers.CatalogHandler
	Purchases      *handlers.PurchasesHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.AuthMiddleware
	// AuthRateLimit throttles register and login. Nil disables throttling.
	AuthRateLimit fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
		app.Get("/health/metrics", cfg.Health.Metrics)
	}

	requireAuth := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireRole(domain.RoleAdmin)
	throttle := cfg.AuthRateLimit
	if throttle == nil {
		throttle = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", throttle, cfg.Auth.Register)
	authGroup.Post("/login", throttle, cfg.Auth.Login)
	authGroup.Delete("/:email", requireAuth, auth.RequireAdminOrSelf("email"), cfg.Auth.Delete)

	users := api.Group("/usuarios", requireAuth)
	users.Get("/me", cfg.Auth.Me)
	if cfg.Users != nil {
		users.Get("/", adminOnly, cfg.Users.List)
		users.Get("/:id", adminOnly, cfg.Users.Get)
	}

	if cfg.Catalog != nil {
		pets := api.Group("/mascotas")
		pets.Get("/", cfg.Catalog.ListPets)
		pets.Get("/:id", cfg.Catalog.GetPet)
		pets.Post("/", requireAuth, cfg.Catalog.CreatePet)

		products := api.Group("/productos")
		products.Get("/", cfg.Catalog.ListProducts)
		products.Get("/:id", cfg.Catalog.GetProduct)
		products.Post("/", requireAuth, adminOnly, cfg.Catalog.CreateProduct)
	}

	if cfg.Purchases != nil {
		purchases := api.Group("/compras", requireAuth)
		purchases.Post("/", cfg.Purchases.Create)
		purchases.Get("/", cfg.Purchases.List)
		purchases.Get("/:id", cfg.Purchases.Get)
		purchases.Get("/:id/detalles", cfg.Purchases.Details)
	}

	if cfg.Contact != nil {
		contact := api.Group("/contacto")
		contact.Post("/", cfg.Contact.Submit)
		contact.Get("/", requireAuth, adminOnly, cfg.Contact.List)
	}
}
