package main

import (
	"fmt"
	"os"

	"ledger/internal/config"
	"ledger/internal/database"
	"ledger/internal/logger"
	"ledger/internal/middleware"
	"ledger/internal/router"
	"ledger/internal/services"
	"ledger/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           Ledger API
// @version         1.0
// @description     Multi-user personal ledger: accounts, income and expense transactions, summaries.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := services.NewCategoryService(dbManager.DB()).SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	validator.Register()

	tokens, err := middleware.NewTokenManager(appConfig.JWTSecret, appConfig.JWTAlgorithm, appConfig.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure tokens: %w", err)
	}

	r := router.New(router.Deps{
		DB:         dbManager.DB(),
		Tokens:     tokens,
		CORSOrigin: appConfig.CORSOrigin,
	})

	log.Infof("Starting ledger server on port %s (%s database)", appConfig.Port, appConfig.DBDriver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return r.Run(":" + appConfig.Port)
}
