// Package claude adapts the Anthropic Messages API to the llm contract.
// Anthropic has no structured-output mode, so the schema is appended to
// the prompt and the reply is fence-stripped before decoding.
package claude

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/pkg/llm"
)

type Client struct {
	client *anthropic.Client
	model  string
}

func New(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (c *Client) Infer(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		schemaJSON, err := json.Marshal(req.Schema)
		if err != nil {
			return nil, err
		}
		prompt = fmt.Sprintf(
			"%s\n\n次のJSONスキーマに従うJSONオブジェクトのみを出力してください。説明文やマークダウンは不要です:\n%s",
			prompt, schemaJSON,
		)
	}

	content := make([]anthropic.MessageContent, 0, 2)
	if req.Image != nil {
		mimeType := req.MIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(
				anthropic.MessagesContentSourceTypeBase64,
				mimeType,
				req.Image,
			),
		))
	}
	content = append(content, anthropic.NewTextMessageContent(prompt))

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: content,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelFailed, err)
	}

	responseText := llm.StripFences(resp.GetFirstContentText())

	return llm.DecodeObject(responseText, req.Schema)
}
