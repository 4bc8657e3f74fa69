package routes

import (
	"skyfare/internal/adapters/http/handlers"
	"skyfare/internal/adapters/http/middleware"
	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/config"
	"skyfare/internal/core/services"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	flightRepo := repositories.NewFlightRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, ticketRepo)
	flightService := services.NewFlightService(flightRepo)
	ticketService := services.NewTicketService(ticketRepo, flightRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	flightHandler := handlers.NewFlightHandler(flightService)
	ticketHandler := handlers.NewTicketHandler(ticketService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public auth routes (stricter rate limit)
	authLimiter := middleware.AuthRateLimiter()
	app.Post("/users/signup", authLimiter, authHandler.SignUp)
	app.Post("/auth/signin", authLimiter, authHandler.SignIn)
	// Sign-out only needs the raw token, not a resolved session
	app.Post("/auth/signout", authHandler.SignOut)

	// Everything below requires a live session
	session := middleware.SessionMiddleware(authService)

	users := app.Group("/users", session)
	users.Post("/", userHandler.CreateUser)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	flights := app.Group("/flights", session)
	flights.Post("/", flightHandler.CreateFlight)
	flights.Get("/available", flightHandler.ListAvailableFlights)
	flights.Get("/", flightHandler.ListAllFlights)

	tickets := app.Group("/tickets", session)
	tickets.Post("/", ticketHandler.PurchaseTicket)
	tickets.Get("/by-user/:userId", ticketHandler.GetUserTickets)
	tickets.Get("/cancel-by/:ticketId", ticketHandler.CancelTicket)
}
