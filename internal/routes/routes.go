package routes

import (
	"time"

	"github.com/akazakov/bankcards/internal/config"
	"github.com/akazakov/bankcards/internal/handlers"
	"github.com/akazakov/bankcards/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	cardHandler *handlers.CardHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Card operations for the authenticated owner
	cards := api.Group("/cards", middleware.JWTProtected(cfg))
	cards.Get("/", cardHandler.ListOwnCards)
	cards.Get("/request_block", userHandler.ListOwnBlockRequests)
	cards.Post("/transfer", cardHandler.Transfer)
	cards.Get("/:id", cardHandler.GetCard)
	cards.Get("/:id/balance", cardHandler.GetBalance)
	cards.Post("/:id/block-request", cardHandler.RequestBlock)

	// Self-service user operations
	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Put("/update_password", userHandler.UpdatePassword)
	users.Get("/request_block", userHandler.ListOwnBlockRequests)

	// Admin panel (JWT + ADMIN role)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/users", userHandler.ListUsers)
	admin.Get("/users/:id", userHandler.GetUser)
	admin.Put("/users/:id", userHandler.UpdateUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)

	admin.Get("/cards", cardHandler.ListAllCards)
	admin.Post("/cards", cardHandler.CreateCard)
	admin.Get("/cards/request_block", cardHandler.ListBlockRequests)
	admin.Post("/cards/complete_request/:id", cardHandler.CompleteBlockRequest)
	admin.Put("/cards/status/:id", cardHandler.UpdateStatus)
	admin.Delete("/cards/:id", cardHandler.DeleteCard)
}
