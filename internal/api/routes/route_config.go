package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/api/handlers"
	"github.com/Univearth/ai-hackathon/internal/middleware"
)

type Config struct {
	App             *fiber.App
	AnalysisHandler handlers.AnalysisHandler
	MenuHandler     handlers.MenuHandler
	DocumentHandler handlers.DocumentHandler
	ChatHandler     handlers.ChatHandler
	Middleware      middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Inventory()
	c.Documents()
	c.Webhook()
	c.GuestRoute()
}

func (c *Config) Inventory() {
	c.App.Post("/analyze", c.AnalysisHandler.Analyze)
	c.App.Post("/suggest-menu", c.MenuHandler.SuggestMenu)
}

func (c *Config) Documents() {
	c.App.Post("/upload-json", c.DocumentHandler.UploadJSON)
	c.App.Get("/get-json/:id", c.DocumentHandler.GetJSON)
}

func (c *Config) Webhook() {
	c.App.Post("/callback", c.ChatHandler.Callback)
}

func (c *Config) GuestRoute() {
	c.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	c.App.Get("/seed", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    domain.SeedProducts,
			"message": "テストデータを返しました",
		})
	})
}
