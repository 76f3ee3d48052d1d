package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourbase/internal/api"
	"tourbase/internal/app/service"
	"tourbase/internal/common/security"
	"tourbase/internal/domain/repository"
	"tourbase/internal/platform/cache"
	"tourbase/internal/platform/config"
	"tourbase/internal/platform/database"
	"tourbase/internal/platform/mail"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT codec
	jwt := security.NewJWT(cfg)

	// 3. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 4. Initialize Redis (rate limiter backend)
	rdb, err := cache.Connect(cfg)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	// 5. Initialize Mailer
	var mailer mail.Mailer
	if cfg.MailDriver == "postmark" {
		mailer, err = mail.NewPostmarkMailer(cfg)
		if err != nil {
			log.Fatalf("Mailer initialization failed: %v", err)
		}
	} else {
		mailer = mail.NewDevMailer()
	}

	// 6. Initialize Repositories & Services
	userRepo := repository.NewPgUserRepository(db)
	authService := service.NewAuthService(userRepo, jwt, mailer, cfg)
	userService := service.NewUserService(userRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, jwt, userRepo, authService, userService, rdb)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
