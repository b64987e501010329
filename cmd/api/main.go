// @title FinLearn API
// @version 1.0
// @description REST API for the FinLearn investment-education platform.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"finlearn/internal/adapter"
	llmadapter "finlearn/internal/adapter/llm"
	"finlearn/internal/cache"
	"finlearn/internal/config"
	"finlearn/internal/database"
	"finlearn/internal/handler"
	"finlearn/internal/logger"
	"finlearn/internal/middleware"
	"finlearn/internal/repository"
	"finlearn/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client
	llm, err := openai.New(
		openai.WithToken(cfg.LLM.APIKey),
		openai.WithModel(cfg.LLM.Model),
	)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	moduleRepository := repository.NewSQLXModuleRepository(db)
	progressRepository := repository.NewSQLXProgressRepository(db)
	quizResultRepository := repository.NewSQLXQuizResultRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// LLM adapters
	chatCompleter := llmadapter.NewChatCompleter(llm, cfg.LLM.Timeout)
	moduleGenerator := llmadapter.NewModuleGenerator(llm, cfg.LLM.Timeout)
	quizGenerator := llmadapter.NewQuizGenerator(llm, cfg.LLM.Timeout)

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, progressRepository, moduleRepository, quizResultRepository)
	progressService := service.NewProgressService(progressRepository, moduleRepository, quizResultRepository, txManager)
	achievementService := service.NewAchievementService(progressRepository, quizResultRepository)
	usageService := service.NewUsageService(progressRepository, userRepository, cfg.Usage.DailyModuleLimit)
	recommendationService := service.NewRecommendationService(progressRepository, moduleRepository)
	moduleService := service.NewModuleService(moduleRepository, moduleGenerator, cacheAdapter, cfg.Cache.ModuleCatalogTTL)
	quizService := service.NewQuizService(quizResultRepository, moduleRepository, quizGenerator)
	chatService := service.NewChatService(chatCompleter)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService, cfg)
	userHandler := handler.NewUserHandler(userService, progressService, achievementService)
	moduleHandler := handler.NewModuleHandler(moduleService, recommendationService)
	progressHandler := handler.NewProgressHandler(progressService)
	usageHandler := handler.NewUsageHandler(usageService)
	quizHandler := handler.NewQuizHandler(quizService)
	chatHandler := handler.NewChatHandler(chatService)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/health", healthHandler.Health)

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.Me)

	// Module routes
	apiGroup.Get("/modules/status", moduleHandler.GetStatus) // public bootstrap probe
	apiGroup.Get("/modules", middleware.Protected(authService), moduleHandler.GetModules)
	apiGroup.Post("/modules/seed", middleware.Protected(authService), moduleHandler.SeedModules)
	apiGroup.Post("/modules/generate", middleware.Protected(authService), moduleHandler.GenerateModule)
	apiGroup.Get("/modules/recommendations", middleware.Protected(authService), moduleHandler.GetRecommendations)

	// Progress and usage routes
	apiGroup.Post("/progress/update", middleware.Protected(authService), progressHandler.UpdateProgress)
	apiGroup.Get("/usage/daily", middleware.Protected(authService), usageHandler.GetDailyUsage)
	apiGroup.Post("/usage/track", middleware.Protected(authService), usageHandler.TrackUsage)
	apiGroup.Get("/achievements", middleware.Protected(authService), userHandler.GetAchievements)

	// User routes
	userGroup := apiGroup.Group("/user", middleware.Protected(authService))
	userGroup.Get("/profile", userHandler.GetProfile)
	userGroup.Get("/stats", userHandler.GetStats)
	userGroup.Get("/progress", userHandler.GetProgress)

	// Quiz and chat routes
	apiGroup.Post("/quiz/generate", middleware.Protected(authService), quizHandler.GenerateQuiz)
	apiGroup.Post("/quiz/results", middleware.Protected(authService), quizHandler.RecordResult)
	apiGroup.Get("/quiz/results", middleware.Protected(authService), quizHandler.GetResults)
	apiGroup.Post("/chat", middleware.Protected(authService), chatHandler.Chat)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
