package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/api/presenters"
	"github.com/Univearth/ai-hackathon/pkg/document"
)

type (
	DocumentHandler interface {
		UploadJSON(c *fiber.Ctx) error
		GetJSON(c *fiber.Ctx) error
	}

	documentHandler struct {
		documentService document.DocumentService
		validator       *validator.Validate
	}
)

func NewDocumentHandler(documentService document.DocumentService, validator *validator.Validate) DocumentHandler {
	return &documentHandler{
		documentService: documentService,
		validator:       validator,
	}
}

func (h *documentHandler) UploadJSON(c *fiber.Ctx) error {
	req := new(domain.UploadJSONRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadJSON, err)
	}

	url, err := h.documentService.UploadJSON(c.Context(), req.ID, req.Data)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedUploadJSON, err)
	}

	return c.JSON(domain.UploadJSONResponse{URL: url})
}

func (h *documentHandler) GetJSON(c *fiber.Ctx) error {
	id := c.Params("id")

	data, err := h.documentService.GetJSON(c.Context(), id)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetJSON, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
