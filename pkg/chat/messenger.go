package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIBase  = "https://api.line.me"
	defaultDataBase = "https://api-data.line.me"
)

type (
	// Messenger is the outbound side of the chat provider: replying to
	// an event and fetching the binary content of an image message.
	Messenger interface {
		ReplyText(ctx context.Context, replyToken string, text string) error
		// MessageContent returns the message payload bytes and their
		// content type.
		MessageContent(ctx context.Context, messageID string) ([]byte, string, error)
	}

	lineMessenger struct {
		channelToken string
		apiBase      string
		dataBase     string
		httpClient   *http.Client
	}
)

func NewMessenger(channelToken string) Messenger {
	return &lineMessenger{
		channelToken: channelToken,
		apiBase:      defaultAPIBase,
		dataBase:     defaultDataBase,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *lineMessenger) ReplyText(ctx context.Context, replyToken string, text string) error {
	requestBody := map[string]interface{}{
		"replyToken": replyToken,
		"messages": []map[string]interface{}{
			{"type": "text", "text": text},
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return err
	}

	url := m.apiBase + "/v2/bot/message/reply"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.channelToken)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reply request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reply API error: %s - %s", resp.Status, string(bodyBytes))
	}

	return nil
}

func (m *lineMessenger) MessageContent(ctx context.Context, messageID string) ([]byte, string, error) {
	url := fmt.Sprintf("%s/v2/bot/message/%s/content", m.dataBase, messageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+m.channelToken)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("content request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("content API error: %s - %s", resp.Status, string(bodyBytes))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}
