package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"bytebabies/internal/config"
	"bytebabies/internal/handlers"
	"bytebabies/internal/repository"
	"bytebabies/internal/security"
	"bytebabies/internal/service"
	"bytebabies/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Open the document store (memory, sqlite, postgres, mysql, mongo)
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	log.Printf("Document store ready (backend: %s)", backend.Name)

	// Token registry: Redis when configured, otherwise in-process
	var tokens security.TokenStore = security.NewMemoryTokenStore()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		tokens = security.NewRedisTokenStore(client)
		log.Printf("Token registry using redis at %s", cfg.RedisAddr)
	}

	// Initialize services
	authService := service.NewAuthService(
		repository.NewAccountRepository(backend),
		tokens,
		service.AuthConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TokenTTL: cfg.TokenTTL},
	)

	var opts []service.Option
	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Printf("Warning: email disabled: %v", err)
	} else {
		opts = append(opts, service.WithMailer(emailService))
	}

	facade := service.NewFacade(backend, authService, opts...)

	if cfg.AdminEmail != "" {
		if err := facade.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to bootstrap admin: %v", err)
		}
	}

	limiter := security.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.NewRouter(facade, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: shutdown did not complete: %v", err)
	}

	// Let absence notices that are still in flight finish
	facade.Wait()
}
