// Package gemini calls the Gemini generateContent REST API with
// structured output so the reply is constrained to the request schema.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func New(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Infer(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	parts := make([]map[string]interface{}, 0, 2)
	if req.Image != nil {
		mimeType := req.MIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(req.Image),
			},
		})
	}
	parts = append(parts, map[string]interface{}{"text": req.Prompt})

	generationConfig := map[string]interface{}{
		"temperature": 0.1,
	}
	if req.Schema != nil {
		generationConfig["responseMimeType"] = "application/json"
		generationConfig["responseSchema"] = toResponseSchema(req.Schema)
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": generationConfig,
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: gemini API error: %s - %s", domain.ErrModelFailed, resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", domain.ErrMalformedResponse)
	}

	responseText := llm.StripFences(geminiResp.Candidates[0].Content.Parts[0].Text)

	return llm.DecodeObject(responseText, req.Schema)
}

// toResponseSchema converts the shared schema into the generateContent
// responseSchema shape, which spells type names in upper case.
func toResponseSchema(s *llm.Schema) map[string]interface{} {
	out := map[string]interface{}{
		"type": strings.ToUpper(s.Type),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = toResponseSchema(prop)
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = toResponseSchema(s.Items)
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}
