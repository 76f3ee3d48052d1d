package api

import (
	"net/http"
	"time"

	"tourbase/internal/api/handler"
	"tourbase/internal/api/middleware"
	"tourbase/internal/app/service"
	"tourbase/internal/common/security"
	"tourbase/internal/domain/repository"
	"tourbase/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	cfg *config.Config,
	jwt *security.JWT,
	userRepo repository.UserRepository,
	authService *service.AuthService,
	userService *service.UserService,
	rdb *redis.Client,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Extracts a token from "Authorization: Bearer <t>" or the jwt cookie
	// and stores the verification result in the context; the Protect
	// middleware decides what to do with it per route.
	r.Use(jwtauth.Verifier(jwt.Auth()))

	protect := middleware.Protect(userRepo)
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/users", func(users chi.Router) {
			authHandler := handler.NewAuthHandler(authService, cfg, protect, limiter.Handler)
			authHandler.RegisterRoutes(users)

			userHandler := handler.NewUserHandler(userService, protect)
			userHandler.RegisterRoutes(users)
		})
	})

	return r
}
