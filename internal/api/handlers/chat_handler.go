package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/api/presenters"
	"github.com/Univearth/ai-hackathon/pkg/chat"
)

// SignatureHeader carries the chat provider's request signature.
const SignatureHeader = "X-Line-Signature"

type (
	ChatHandler interface {
		Callback(c *fiber.Ctx) error
	}

	chatHandler struct {
		chatService   chat.ChatService
		channelSecret string
	}
)

func NewChatHandler(chatService chat.ChatService, channelSecret string) ChatHandler {
	return &chatHandler{
		chatService:   chatService,
		channelSecret: channelSecret,
	}
}

func (h *chatHandler) Callback(c *fiber.Ctx) error {
	body := c.Body()

	if !chat.ValidSignature(h.channelSecret, body, c.Get(SignatureHeader)) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidSignature, domain.ErrInvalidSignature)
	}

	req := new(domain.WebhookRequest)
	if err := json.Unmarshal(body, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	for _, event := range req.Events {
		h.chatService.HandleEvent(c.Context(), event)
	}

	return c.SendString("OK")
}
