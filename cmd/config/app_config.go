package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Univearth/ai-hackathon/internal/api/handlers"
	"github.com/Univearth/ai-hackathon/internal/api/routes"
	"github.com/Univearth/ai-hackathon/internal/middleware"
	"github.com/Univearth/ai-hackathon/internal/utils"
	"github.com/Univearth/ai-hackathon/internal/utils/storage"
	"github.com/Univearth/ai-hackathon/pkg/analysis"
	"github.com/Univearth/ai-hackathon/pkg/chat"
	"github.com/Univearth/ai-hackathon/pkg/document"
	"github.com/Univearth/ai-hackathon/pkg/llm"
	"github.com/Univearth/ai-hackathon/pkg/llm/claude"
	"github.com/Univearth/ai-hackathon/pkg/llm/gemini"
	"github.com/Univearth/ai-hackathon/pkg/menu"
)

func NewApp() (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         20 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Tokyo",
		Output:     file,
	}))

	app.Use(recover.New())

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3()
	if err != nil {
		return nil, err
	}

	model, err := newModelClient()
	if err != nil {
		return nil, err
	}

	// Service
	analysisService := analysis.NewAnalysisService(s3, model)
	menuService := menu.NewMenuService(model)
	documentService := document.NewDocumentService(s3)
	messenger := chat.NewMessenger(utils.GetConfig("CHANNEL_TOKEN"))
	chatService := chat.NewChatService(
		chat.NewMemorySessionStore(),
		analysisService,
		documentService,
		messenger,
	)

	// Handler
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	documentHandler := handlers.NewDocumentHandler(documentService, validator)
	chatHandler := handlers.NewChatHandler(chatService, utils.GetConfig("CHANNEL_SECRET"))

	// routes
	routesConfig := routes.Config{
		App:             app,
		AnalysisHandler: analysisHandler,
		MenuHandler:     menuHandler,
		DocumentHandler: documentHandler,
		ChatHandler:     chatHandler,
		Middleware:      middlewares,
	}
	routesConfig.Setup()
	return app, nil
}

// newModelClient picks the provider adapter from configuration. Gemini is
// the default; Claude is available behind the same contract.
func newModelClient() (llm.Client, error) {
	switch provider := utils.GetConfig("MODEL_PROVIDER"); provider {
	case "", "gemini":
		apiKey := utils.GetConfig("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
		model := utils.GetConfig("GEMINI_MODEL")
		if model == "" {
			model = "gemini-2.5-pro-exp-03-25"
		}
		return gemini.New(apiKey, model), nil
	case "claude", "anthropic":
		apiKey := utils.GetConfig("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		model := utils.GetConfig("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-3-5-sonnet-latest"
		}
		return claude.New(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", provider)
	}
}
