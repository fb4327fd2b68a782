// Package llm defines the model-provider contract shared by every
// endpoint that calls a vision/text model. Providers are interchangeable
// adapters selected by configuration.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Univearth/ai-hackathon/domain"
)

type (
	// Request carries one inference call: a natural-language instruction,
	// the JSON schema the reply must satisfy, and an optional image.
	Request struct {
		Prompt   string
		Schema   *Schema
		Image    []byte
		MIMEType string
	}

	Client interface {
		// Infer returns the provider's reply as a validated JSON object.
		// A non-success provider status yields domain.ErrModelFailed;
		// unparsable output or missing required keys yield
		// domain.ErrMalformedResponse.
		Infer(ctx context.Context, req Request) (json.RawMessage, error)
	}

	// Schema is the JSON-schema subset understood by all adapters.
	Schema struct {
		Type        string             `json:"type"`
		Description string             `json:"description,omitempty"`
		Properties  map[string]*Schema `json:"properties,omitempty"`
		Items       *Schema            `json:"items,omitempty"`
		Enum        []string           `json:"enum,omitempty"`
		Required    []string           `json:"required,omitempty"`
	}
)

// StripFences removes a surrounding markdown code fence from model output.
// Some providers wrap JSON replies in ```json blocks even when asked not to.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// DecodeObject parses text as a JSON object and verifies every key the
// schema marks required is present.
func DecodeObject(text string, schema *Schema) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if schema != nil {
		for _, key := range schema.Required {
			if _, ok := obj[key]; !ok {
				return nil, fmt.Errorf("%w: missing key %q", domain.ErrMalformedResponse, key)
			}
		}
	}

	return json.RawMessage(text), nil
}
