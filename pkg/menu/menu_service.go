package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/pkg/llm"
)

const (
	defaultAttempts   = 5
	defaultRetryDelay = time.Second

	// ingredientLimit caps the prompt at the nearest-to-expiry items.
	ingredientLimit = 3
)

var suggestionSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"title":       {Type: "string"},
		"ingredients": {Type: "array", Items: &llm.Schema{Type: "string"}},
		"indication":  {Type: "string"},
	},
	Required: []string{"title", "ingredients", "indication"},
}

type (
	MenuService interface {
		// SuggestMenu proposes one dish using the soonest-to-expire
		// products. The model call is retried up to the configured
		// attempt count with a fixed pause between attempts.
		SuggestMenu(ctx context.Context, products []domain.ProductRecord) (domain.MenuSuggestion, error)
	}

	menuService struct {
		model      llm.Client
		attempts   int
		retryDelay time.Duration
	}
)

func NewMenuService(model llm.Client) MenuService {
	return &menuService{
		model:      model,
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}
}

func (s *menuService) SuggestMenu(ctx context.Context, products []domain.ProductRecord) (domain.MenuSuggestion, error) {
	if len(products) == 0 {
		return domain.MenuSuggestion{}, domain.ErrNoProducts
	}

	selected := selectExpiring(products, ingredientLimit)
	prompt := buildPrompt(selected)

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(s.retryDelay)
		}

		raw, err := s.model.Infer(ctx, llm.Request{
			Prompt: prompt,
			Schema: suggestionSchema,
		})
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", attempt).Msg("menu suggestion failed")
			continue
		}

		var suggestion domain.MenuSuggestion
		if err := json.Unmarshal(raw, &suggestion); err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
			log.Warn().Err(err).Int("attempt", attempt).Msg("menu suggestion unparsable")
			continue
		}

		return suggestion, nil
	}

	return domain.MenuSuggestion{}, lastErr
}

// selectExpiring returns the up-to-limit products with the smallest
// expiration_date under plain string ordering. ISO-8601 dates in one
// shared notation sort chronologically this way; mixed notations keep
// the historical behavior of the service.
func selectExpiring(products []domain.ProductRecord, limit int) []domain.ProductRecord {
	sorted := make([]domain.ProductRecord, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExpirationDate < sorted[j].ExpirationDate
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func buildPrompt(products []domain.ProductRecord) string {
	var b strings.Builder
	b.WriteString("以下の食材は賞味期限が近いものです。これらを使った料理を1つ提案してください：\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s（%g%s）\n", p.Name, p.Amount, p.Unit)
	}
	b.WriteString(`JSON形式で出力してください。キーは以下の通りです：
- title（料理名）
- ingredients（使用する食材名の配列）
- indication（作り方の簡単な説明）`)
	return b.String()
}
