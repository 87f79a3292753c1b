package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ekoink.backend/internal/config"
	"ekoink.backend/internal/infrastructure/ai"
	"ekoink.backend/internal/infrastructure/jobs"
	"ekoink.backend/internal/infrastructure/mail"
	"ekoink.backend/internal/infrastructure/repositories"
	"ekoink.backend/internal/interfaces/http/handlers"
	"ekoink.backend/internal/interfaces/http/middleware"
	"ekoink.backend/internal/usecases"
	"ekoink.backend/pkg/jwt"
	"ekoink.backend/pkg/logger"
	"ekoink.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	callRepo := repositories.NewCallRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	profileRepo := repositories.NewToneProfileRepository(db)
	usageRepo := repositories.NewUsageRepository(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Billing.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize provider clients
	aiClient := ai.NewClient(cfg.AI)
	mailClient := mail.NewClient(cfg.Handwrite)

	// Start the background task runner
	taskRunner := jobs.NewTaskRunner()
	taskRunner.Start()

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, accountRepo, jwtService, cfg.Billing)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo)
	usageUsecase := usecases.NewUsageUsecase(usageRepo, accountRepo)
	learningUsecase := usecases.NewStyleLearningUsecase(profileRepo, noteRepo, aiClient)
	noteUsecase := usecases.NewNoteUsecase(noteRepo, userRepo, dealRepo, callRepo, learningUsecase, usageUsecase, aiClient, mailClient, taskRunner)
	dealUsecase := usecases.NewDealUsecase(dealRepo)
	callUsecase := usecases.NewCallUsecase(callRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)
	noteHandler := handlers.NewNoteHandler(noteUsecase)
	dealHandler := handlers.NewDealHandler(dealUsecase)
	callHandler := handlers.NewCallHandler(callUsecase)
	usageHandler := handlers.NewUsageHandler(usageUsecase)
	profileHandler := handlers.NewProfileHandler(learningUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerDashboardRoutes(r, routeDeps{
		authHandler:    authHandler,
		apiKeyHandler:  apiKeyHandler,
		noteHandler:    noteHandler,
		dealHandler:    dealHandler,
		callHandler:    callHandler,
		usageHandler:   usageHandler,
		profileHandler: profileHandler,
		jwtAuth:        middleware.AuthMiddleware(jwtService),
	})
	registerExternalAPIRoutes(r, externalRouteDeps{
		noteHandler:   noteHandler,
		dealHandler:   dealHandler,
		callHandler:   callHandler,
		usageHandler:  usageHandler,
		apiKeyUsecase: apiKeyUsecase,
		usageUsecase:  usageUsecase,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		taskRunner.Stop()
	}()

	// Start server
	log.Printf("🚀 EkoInk Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 Dashboard API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("🔑 External API: http://localhost:%s/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
