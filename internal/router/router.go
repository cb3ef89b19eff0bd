package router

import (
	"context"
	"fmt"
	"log"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/handlers"
	"github.com/anonto42/friendbook/backend/internal/middleware"
	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/anonto42/friendbook/backend/internal/store"
	"github.com/anonto42/friendbook/backend/pkg/config"
	"github.com/anonto42/friendbook/backend/validators"
	"github.com/labstack/echo/v4"
)

// SetupRoutes loads every collection from snapshots and configures all
// application routes, injecting dependencies. opts are passed on to the
// services (Firebase login, clock, hashing cost).
func SetupRoutes(ctx context.Context, e *echo.Echo, snapshots store.SnapshotStore, cfg *config.Config, opts ...services.Option) error {
	e.Validator = validators.NewValidator()

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	repos, err := repositories.Open(ctx, snapshots)
	if err != nil {
		return fmt.Errorf("load collections: %w", err)
	}
	log.Println("Collections loaded.")

	hub := realtime.NewHub()
	// Shutdown skips hijacked connections, so websockets are closed here
	e.Server.RegisterOnShutdown(hub.Close)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	svc := services.New(repos, tokens, hub, opts...)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(svc.Auth).RegisterAuthRoutes(authGroup)
	if svc.Auth.FirebaseEnabled() {
		log.Println("Firebase login enabled.")
	}
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(tokens))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	handlers.NewUserHandler(svc.Users).RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(api)
	handlers.NewPostHandler(svc.Feed).RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	handlers.NewFriendshipHandler(svc.Graph).RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	handlers.NewMessageHandler(svc.Messages).RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	handlers.NewRealtimeHandler(hub).RegisterRealtimeRoutes(api)
	log.Println("Realtime route configured.")

	log.Println("All routes configured.")
	return nil
}
