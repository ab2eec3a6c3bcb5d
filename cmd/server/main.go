package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/taellinglin/LingTreasury/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taellinglin/LingTreasury/internal/artifact"
	"github.com/taellinglin/LingTreasury/internal/auth"
	"github.com/taellinglin/LingTreasury/internal/cache"
	"github.com/taellinglin/LingTreasury/internal/config"
	"github.com/taellinglin/LingTreasury/internal/db"
	"github.com/taellinglin/LingTreasury/internal/handler"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/pipeline"
	"github.com/taellinglin/LingTreasury/internal/repository"
	"github.com/taellinglin/LingTreasury/internal/router"
	"github.com/taellinglin/LingTreasury/internal/service"
)

// @title Ling Country Treasury API
// @version 1.0
// @description Banknote gallery with asynchronous generation tasks, serial verification, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.GenerationTask{},
		&model.Banknote{},
		&model.SerialNumber{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	if err := os.MkdirAll(cfg.ImagesRoot, 0o755); err != nil {
		log.Fatalf("create images root: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	banknoteRepo := repository.NewBanknoteRepository(gormDB)
	serialRepo := repository.NewSerialNumberRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	totpService := auth.NewTOTPService()
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize the generation subsystem
	guard := service.NewGuard()
	policy := service.NewEligibilityPolicy(taskRepo)
	runner := pipeline.NewCommandRunner(cfg.GeneratorCmd, cfg.GeneratorArgs, "")
	renderer := artifact.NewRenderer()
	ingestService := service.NewIngestService(banknoteRepo, renderer, cfg.ImagesRoot)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, totpService, tokenStore)
	userService := service.NewUserService(userRepo, taskRepo, banknoteRepo, policy, cfg.ImagesRoot)
	generationService := service.NewGenerationService(userRepo, taskRepo, policy, guard, runner, ingestService, cfg.PipelineTimeout)
	banknoteService := service.NewBanknoteService(banknoteRepo)
	verifyService := service.NewVerifyService(serialRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	generationHandler := handler.NewGenerationHandler(generationService, userService)
	banknoteHandler := handler.NewBanknoteHandler(banknoteService)
	verifyHandler := handler.NewVerifyHandler(verifyService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		generationHandler,
		banknoteHandler,
		verifyHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
