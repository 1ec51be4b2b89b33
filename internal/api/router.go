package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/go-desk/internal/api/handlers"
	"github.com/hugh/go-desk/internal/api/middleware"
	"github.com/hugh/go-desk/internal/auth"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/company"
	"github.com/hugh/go-desk/internal/role"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	CompanyService *company.Service
	RoleService    *role.Service
	SocketHandler  http.Handler
	AllowedOrigins []string
	RateLimitReqs  int
	RateLimitSecs  int
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	resolver := authz.NewResolver(cfg.DB)

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Logger)
	companyHandler := handlers.NewCompanyHandler(cfg.CompanyService, resolver, cfg.Logger)
	roleHandler := handlers.NewRoleHandler(cfg.RoleService, resolver, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Public auth endpoints
	r.Post("/users", authHandler.Register)
	r.Post("/sessions/password", authHandler.Login)
	r.Post("/password/recover", authHandler.RecoverPassword)
	r.Post("/password/reset", authHandler.ResetPassword)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTService))
		r.Use(middleware.ActiveUser(cfg.AuthService))

		r.Get("/profile", authHandler.Profile)

		r.Post("/company", companyHandler.Create)
		r.Get("/companies", companyHandler.List)
		r.Post("/company/{slug}/domain", companyHandler.CreateDomain)

		r.Route("/{slug}", func(r chi.Router) {
			r.Post("/roles", roleHandler.Create)
			r.Get("/roles", roleHandler.List)
			r.Get("/role/{id}", roleHandler.Get)
			r.Put("/role/{id}", roleHandler.Update)
			r.Delete("/role/{id}", roleHandler.Delete)
		})
	})

	// Realtime channel; the socket handler verifies its own token
	if cfg.SocketHandler != nil {
		r.Handle("/ws", cfg.SocketHandler)
	}

	return &Router{r}
}
