package main

import (
	"net/http"
	"os"

	_ "sweetshop/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sweetshop/internal/auth"
	"sweetshop/internal/cache"
	"sweetshop/internal/config"
	"sweetshop/internal/db"
	"sweetshop/internal/handler"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
	"sweetshop/internal/router"
	"sweetshop/internal/service"
)

// @title Sweet Shop API
// @version 1.0
// @description Inventory management API for a sweet shop with JWT authentication and role-gated admin operations.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logrus.Warn("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Sweet{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logrus.Warnf("drop table (may not exist): %v", err)
			}
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Sweet{}); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	sweetRepo := repository.NewSweetRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService, cfg.AllowAdminSignup)
	sweetService := service.NewSweetService(sweetRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)

	router.Register(e, cfg, userRepo, authHandler, sweetHandler)

	addr := ":" + cfg.ServerPort
	logrus.Infof("sweet shop API listening on %s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("server start: %v", err)
	}
}
