package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ai-screener/internal/config"
	"alfredoptarigan/ai-screener/internal/handlers"
	"alfredoptarigan/ai-screener/internal/repositories"
	"alfredoptarigan/ai-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(db)
	mcqSessionRepo := repositories.NewMCQSessionRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	mcqReportRepo := repositories.NewMCQReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	docParser := services.NewDocumentParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	resumeParser := services.NewResumeParserService(docParser, geminiService)

	// Initialize background indexer
	indexer := services.NewIndexer(
		geminiService,
		qdrantService,
		services.NewTextChunker(),
		cfg.Indexer.Concurrency,
	)
	indexer.Start(context.Background())
	log.Println("✅ Indexer started successfully")

	// Initialize orchestrators
	interviewService := services.NewInterviewService(
		sessionRepo,
		reportRepo,
		resumeParser,
		geminiService,
		qdrantService,
		storageService,
		indexer,
		cfg.Interview.TotalQuestions,
		cfg.Interview.MinReportAnswers,
		cfg.Interview.RetryMaxAttempts,
	)

	mcqService := services.NewMCQService(
		mcqSessionRepo,
		mcqReportRepo,
		resumeParser,
		geminiService,
		storageService,
		indexer,
		cfg.MCQ.QuestionCount,
		cfg.MCQ.RetryMaxAttempts,
	)
	log.Println("✅ Orchestrators initialized")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(interviewService, cfg.Storage.MaxFileSize)
	mcqHandler := handlers.NewMCQHandler(mcqService, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Screener API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Interview endpoints
	api.Post("/interview/start", interviewHandler.HandleStart)
	api.Post("/interview/chat", interviewHandler.HandleChat)
	api.Post("/interview/report/:session_id", interviewHandler.HandleGenerateReport)
	api.Get("/interview/report/:session_id", interviewHandler.HandleGetReport)
	api.Get("/interview/session/:session_id", interviewHandler.HandleGetSession)
	api.Get("/interview/reports", interviewHandler.HandleListReports)

	// MCQ endpoints
	api.Post("/mcq/start", mcqHandler.HandleStart)
	api.Post("/mcq/answer", mcqHandler.HandleAnswer)
	api.Post("/mcq/report/:session_id", mcqHandler.HandleGenerateReport)
	api.Get("/mcq/session/:session_id", mcqHandler.HandleGetSession)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/interview/start",
				"POST /api/v1/interview/chat",
				"POST /api/v1/interview/report/:session_id",
				"GET /api/v1/interview/report/:session_id",
				"GET /api/v1/interview/session/:session_id",
				"GET /api/v1/interview/reports",
				"POST /api/v1/mcq/start",
				"POST /api/v1/mcq/answer",
				"POST /api/v1/mcq/report/:session_id",
				"GET /api/v1/mcq/session/:session_id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		indexer.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
