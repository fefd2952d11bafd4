package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sunnycharan27/loopync/internal/config"
	"github.com/Sunnycharan27/loopync/internal/database"
	"github.com/Sunnycharan27/loopync/internal/handlers"
	"github.com/Sunnycharan27/loopync/internal/logging"
	"github.com/Sunnycharan27/loopync/internal/middleware"
	"github.com/Sunnycharan27/loopync/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting Loopync server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	authService := services.NewAuthService(dbAdapter, redisAdapter)
	blockService := services.NewBlockService(dbAdapter)
	friendService := services.NewFriendService(dbAdapter, blockService)
	userService := services.NewUserService(dbAdapter, friendService)
	followService := services.NewFollowService(dbAdapter)
	notificationService := services.NewNotificationService(dbAdapter)
	inviteService := services.NewFriendInviteService(dbAdapter, blockService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService, cfg.Server.Secure)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService, notificationService)
	followHandler := handlers.NewFollowHandler(followService, notificationService)
	blockHandler := handlers.NewBlockHandler(blockService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	inviteHandler := handlers.NewFriendInviteHandler(inviteService, notificationService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	csrfMiddleware := middleware.NewCSRFMiddleware(cfg.Server.Secure)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)
	authRateLimiter := middleware.NewAuthRateLimiter(redisDB.Client)
	apiRateLimiter := middleware.NewAPIRateLimiter(redisDB.Client)

	requireAuth := authMiddleware.RequireAuth
	limitAuth := authRateLimiter.Limit

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// CSRF token endpoint
	mux.Handle("GET /api/csrf", http.HandlerFunc(csrfMiddleware.GetToken))

	// Auth endpoints; login and register carry a tighter rate limit
	mux.Handle("POST /api/auth/register", limitAuth(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", limitAuth(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// User directory endpoints
	mux.Handle("GET /api/users/search", requireAuth(http.HandlerFunc(userHandler.Search)))
	mux.Handle("GET /api/users/{id}", requireAuth(http.HandlerFunc(userHandler.Profile)))
	mux.Handle("GET /api/users/{id}/friends", requireAuth(http.HandlerFunc(friendHandler.ListFriends)))
	mux.Handle("GET /api/users/{id}/followers", requireAuth(http.HandlerFunc(followHandler.ListFollowers)))
	mux.Handle("GET /api/users/{id}/following", requireAuth(http.HandlerFunc(followHandler.ListFollowing)))
	mux.Handle("GET /api/users/{id}/relationship", requireAuth(http.HandlerFunc(friendHandler.RelationshipStatus)))
	mux.Handle("POST /api/users/{id}/follow", requireAuth(http.HandlerFunc(followHandler.Toggle)))

	// Friend endpoints
	mux.Handle("POST /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("GET /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.ListPendingRequests)))
	mux.Handle("GET /api/friends/requests/sent", requireAuth(http.HandlerFunc(friendHandler.ListSentRequests)))
	mux.Handle("PUT /api/friends/requests/{userId}/accept", requireAuth(http.HandlerFunc(friendHandler.AcceptRequest)))
	mux.Handle("PUT /api/friends/requests/{userId}/reject", requireAuth(http.HandlerFunc(friendHandler.RejectRequest)))
	mux.Handle("DELETE /api/friends/{userId}", requireAuth(http.HandlerFunc(friendHandler.RemoveFriend)))

	// Block endpoints
	mux.Handle("POST /api/blocks", requireAuth(http.HandlerFunc(blockHandler.Block)))
	mux.Handle("GET /api/blocks", requireAuth(http.HandlerFunc(blockHandler.ListBlocked)))
	mux.Handle("DELETE /api/blocks/{userId}", requireAuth(http.HandlerFunc(blockHandler.Unblock)))

	// Friend invite endpoints
	mux.Handle("POST /api/friends/invites", requireAuth(http.HandlerFunc(inviteHandler.CreateInvite)))
	mux.Handle("GET /api/friends/invites", requireAuth(http.HandlerFunc(inviteHandler.ListInvites)))
	mux.Handle("DELETE /api/friends/invites/{id}/revoke", requireAuth(http.HandlerFunc(inviteHandler.RevokeInvite)))
	mux.Handle("POST /api/friends/invites/accept", requireAuth(http.HandlerFunc(inviteHandler.AcceptInvite)))

	// Notification endpoints
	mux.Handle("GET /api/notifications", requireAuth(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("GET /api/notifications/unread-count", requireAuth(http.HandlerFunc(notificationHandler.UnreadCount)))
	mux.Handle("PUT /api/notifications/{id}/read", requireAuth(http.HandlerFunc(notificationHandler.MarkRead)))
	mux.Handle("PUT /api/notifications/read-all", requireAuth(http.HandlerFunc(notificationHandler.MarkAllRead)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = csrfMiddleware.Protect(handler)
	handler = apiRateLimiter.Limit(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
