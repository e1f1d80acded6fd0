package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/platformcore/auth-service/config"
	"github.com/platformcore/auth-service/db"
	"github.com/platformcore/auth-service/internal/auth/handler"
	repo "github.com/platformcore/auth-service/internal/auth/repository/postgres"
	"github.com/platformcore/auth-service/internal/auth/service"
)

func main() {
	cfg := config.Load()

	if err := db.Migrate(cfg.DBURL); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresUserRepository(dbPool)
	sessionRepo := repo.NewPostgresSessionRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	sessionService := service.NewSessionService(userRepo, sessionRepo, tokenService)
	userService := service.NewUserService(userRepo, sessionService, tokenService, cfg)
	authHandler := handler.NewAuthHandler(userService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
