package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/api/presenters"
	"github.com/Univearth/ai-hackathon/pkg/menu"
)

type (
	MenuHandler interface {
		SuggestMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) SuggestMenu(c *fiber.Ctx) error {
	req := new(domain.SuggestMenuRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNoProducts, err)
	}

	suggestion, err := h.menuService.SuggestMenu(c.Context(), req.Products)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedSuggestMenu, err)
	}

	return c.JSON(suggestion)
}
