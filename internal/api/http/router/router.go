package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tbessonov/shopauth/internal/api/http/handler"
	"github.com/tbessonov/shopauth/internal/api/http/middleware"
	"github.com/tbessonov/shopauth/internal/logger"
)

// Router wires handlers and middleware into a fiber application.
type Router struct {
	authService    handler.AuthService
	sessionService handler.SessionService
	authorizer     middleware.Authorizer
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	sessionService handler.SessionService,
	authorizer middleware.Authorizer,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		sessionService: sessionService,
		authorizer:     authorizer,
		logger:         logger,
	}
}

// Register builds the fiber application with all routes and middleware.
// The /api/auth group is public; everything else behind /api requires a
// valid bearer token.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authorizer, r.logger)

	authHandler := handler.NewAuth(r.authService, r.sessionService, r.logger)
	userHandler := handler.NewUser(r.logger)

	app.Use(logging.Handle)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reissue", authHandler.Reissue)
	auth.Post("/logout", authHandler.Logout)

	users := api.Group("/users", authenticate.Handle)
	users.Get("/me", userHandler.Me)

	return app
}
