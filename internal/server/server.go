package server

import (
	"time"

	"toystore/internal/cart"
	"toystore/internal/handlers"
	"toystore/internal/middleware"
	"toystore/internal/repositories"
	"toystore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Store      repositories.Store
	Carts      cart.Store
	Publisher  services.EventPublisher // nil disables events
	JWTSecret  string
	TokenTTL   time.Duration
	AdminToken string
	// Ready reports the state of optional backends for the health check.
	Ready func() fiber.Map
}

// New wires services and handlers into a Fiber app.
func New(deps Dependencies) *fiber.App {
	authService := services.NewAuthService(deps.Store.Users(), deps.JWTSecret, deps.TokenTTL)
	catalogService := services.NewCatalogService(deps.Store.Products(), deps.Store.Categories())
	cartService := services.NewCartService(deps.Store.Products())
	orderService := services.NewOrderService(deps.Store, deps.Publisher)
	paymentService := services.NewPaymentService(deps.Store, deps.Publisher)
	deliveryService := services.NewDeliveryService(deps.Store, deps.Publisher)

	authHandler := handlers.NewAuthHandler(authService, deps.Carts)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService, deps.Carts)
	orderHandler := handlers.NewOrderHandler(orderService, paymentService, deps.Carts)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)

	app := fiber.New(fiber.Config{
		AppName: "toystore",
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	requireAuth := middleware.AuthRequired(authService)
	requireAdmin := middleware.AdminRequired(deps.AdminToken)

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, requireAuth)
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1, requireAuth)
	orderHandler.RegisterRoutes(apiV1, requireAuth)
	deliveryHandler.RegisterRoutes(apiV1, requireAdmin)

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if deps.Ready != nil {
			for k, v := range deps.Ready() {
				body[k] = v
			}
		}
		return c.Status(fiber.StatusOK).JSON(body)
	})

	return app
}
