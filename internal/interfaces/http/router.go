package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ideaonaction/minu-sso/internal/application"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/config"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/database"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/repository"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/token"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/handlers"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/middleware/auth"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/middleware/ratelimit"
	"go.uber.org/zap"
)

type Router struct {
	router *chi.Mux
	db     *database.Postgres
}

func NewRouter(
	db *database.Postgres,
	cfg *config.Config,
	signer *token.Signer,
	logger *zap.Logger,
) *Router {
	clientRepo := repository.NewClientRepository(db, logger)
	codeRepo := repository.NewCodeRepository(db, logger)
	tokenRepo := repository.NewTokenRepository(db, logger)
	authMiddleware := auth.NewAuthMiddleware(signer, tokenRepo, logger)
	userRepo := repository.NewUserRepository(db, logger)
	subscriptionRepo := repository.NewSubscriptionRepository(db, logger)

	authorizeService := application.NewAuthorizeService(clientRepo, codeRepo, logger)
	tokenService := application.NewTokenService(clientRepo, codeRepo, tokenRepo, signer, logger)
	revokeService := application.NewRevokeService(clientRepo, tokenRepo, logger)
	entitlementService := application.NewEntitlementService(subscriptionRepo, logger)
	loginService := application.NewLoginService(userRepo, logger)

	// Initialize handlers
	authorizeHandler := handlers.NewAuthorizeHandler(authorizeService, authMiddleware, cfg.LoginURL, logger)
	tokenHandler := handlers.NewTokenHandler(tokenService, logger)
	revokeHandler := handlers.NewRevokeHandler(revokeService, logger)
	clientHandler := handlers.NewClientHandler(clientRepo, logger)
	accessHandler := handlers.NewAccessHandler(entitlementService, logger)
	authHandler := handlers.NewAuthHandler(loginService, signer, cfg.SessionDuration, logger)

	// Create router with middleware
	router := createRouter()

	rateLimiter := ratelimit.NewRateLimiter(100, 200, 3*time.Minute)
	router.Use(rateLimiter.Middleware)

	// Health check endpoints
	router.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			// Check database connection
			if err := db.Ping(); err != nil {
				logger.Error("Database health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Database connection failed"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Alive"))
		})
	})

	// OAuth protocol endpoints
	router.Group(func(r chi.Router) {
		r.Get("/oauth/authorize", authorizeHandler.Authorize)
		r.Post("/oauth/token", tokenHandler.Token)
		r.Post("/oauth/revoke", revokeHandler.Revoke)
	})

	// API routes
	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", authHandler.LoginHandler)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticator)
			r.Get("/services/{serviceID}/access", accessHandler.GetAccessHandler)

			// OAuth client management routes
			r.Post("/oauth/clients", clientHandler.CreateClientHandler)
			r.Get("/oauth/clients", clientHandler.ListClientsHandler)
			r.Get("/oauth/clients/{clientID}", clientHandler.GetClientHandler)
			r.Put("/oauth/clients/{clientID}", clientHandler.UpdateClientHandler)
			r.Delete("/oauth/clients/{clientID}", clientHandler.DeactivateClientHandler)
		})
	})

	return &Router{router: router, db: db}
}

func createRouter() *chi.Mux {
	router := chi.NewRouter()

	// Add middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Timeout(60 * time.Second))

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
