package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/api/presenters"
	"github.com/Univearth/ai-hackathon/pkg/analysis"
)

type (
	AnalysisHandler interface {
		Analyze(c *fiber.Ctx) error
	}

	analysisHandler struct {
		analysisService analysis.AnalysisService
	}
)

func NewAnalysisHandler(analysisService analysis.AnalysisService) AnalysisHandler {
	return &analysisHandler{
		analysisService: analysisService,
	}
}

func (h *analysisHandler) Analyze(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFileRequired, err)
	}

	record, err := h.analysisService.AnalyzeUpload(c.Context(), file)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedAnalyzeImage, err)
	}

	return c.JSON(record)
}
