package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/pkg/llm"
)

type scriptedModel struct {
	calls     int
	responses []json.RawMessage
	errs      []error
	prompts   []string
}

func (s *scriptedModel) Infer(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return nil, fmt.Errorf("%w: unscripted call", domain.ErrModelFailed)
}

func newTestService(model llm.Client) *menuService {
	return &menuService{
		model:      model,
		attempts:   defaultAttempts,
		retryDelay: time.Millisecond,
	}
}

func product(name, expiration string) domain.ProductRecord {
	return domain.ProductRecord{
		Name:           name,
		ExpirationDate: expiration,
		Amount:         100,
		Unit:           "g",
		Category:       "野菜",
	}
}

func TestSelectExpiring(t *testing.T) {
	t.Run("fewer than limit keeps all sorted", func(t *testing.T) {
		got := selectExpiring([]domain.ProductRecord{
			product("b", "2025-04-20"),
			product("a", "2025-04-18"),
		}, ingredientLimit)

		require.Len(t, got, 2)
		assert.Equal(t, "2025-04-18", got[0].ExpirationDate)
		assert.Equal(t, "2025-04-20", got[1].ExpirationDate)
	})

	t.Run("keeps the three lexically smallest dates", func(t *testing.T) {
		got := selectExpiring([]domain.ProductRecord{
			product("a", "2025-04-20"),
			product("b", "2025-04-18"),
			product("c", "2025-04-25"),
			product("d", "2025-04-15"),
		}, ingredientLimit)

		require.Len(t, got, 3)
		assert.Equal(t, "2025-04-15", got[0].ExpirationDate)
		assert.Equal(t, "2025-04-18", got[1].ExpirationDate)
		assert.Equal(t, "2025-04-20", got[2].ExpirationDate)
	})
}

func TestSuggestMenuEmptyList(t *testing.T) {
	model := &scriptedModel{}
	service := newTestService(model)

	_, err := service.SuggestMenu(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoProducts)
	assert.Zero(t, model.calls)
}

func TestSuggestMenuSuccess(t *testing.T) {
	model := &scriptedModel{
		responses: []json.RawMessage{
			json.RawMessage(`{"title":"肉じゃが","ingredients":["豚肉","じゃがいも","にんじん"],"indication":"煮込むだけ"}`),
		},
	}
	service := newTestService(model)

	suggestion, err := service.SuggestMenu(context.Background(), []domain.ProductRecord{
		product("豚肉", "2025-04-30"),
		product("じゃがいも", "2025-05-15"),
		product("にんじん", "2025-05-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "肉じゃが", suggestion.Title)
	assert.Equal(t, []string{"豚肉", "じゃがいも", "にんじん"}, suggestion.Ingredients)
	assert.Equal(t, 1, model.calls)

	// Only the soonest-to-expire items appear in the prompt.
	assert.Contains(t, model.prompts[0], "豚肉")
}

func TestSuggestMenuRetriesThenSucceeds(t *testing.T) {
	modelErr := fmt.Errorf("%w: 500", domain.ErrModelFailed)
	model := &scriptedModel{
		errs: []error{modelErr, modelErr, nil},
		responses: []json.RawMessage{
			nil, nil,
			json.RawMessage(`{"title":"カレー","ingredients":["にんじん"],"indication":"炒めて煮る"}`),
		},
	}
	service := newTestService(model)

	suggestion, err := service.SuggestMenu(context.Background(), []domain.ProductRecord{
		product("にんじん", "2025-05-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "カレー", suggestion.Title)
	assert.Equal(t, 3, model.calls)
}

func TestSuggestMenuExhaustsRetries(t *testing.T) {
	modelErr := fmt.Errorf("%w: 500", domain.ErrModelFailed)
	model := &scriptedModel{
		errs: []error{modelErr, modelErr, modelErr, modelErr, modelErr},
	}
	service := newTestService(model)

	start := time.Now()
	_, err := service.SuggestMenu(context.Background(), []domain.ProductRecord{
		product("にんじん", "2025-05-10"),
	})
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, domain.ErrModelFailed)
	assert.Equal(t, defaultAttempts, model.calls)
	// Four pauses between five attempts.
	assert.GreaterOrEqual(t, elapsed, 4*time.Millisecond)
}

func TestSuggestMenuMalformedReplyIsRetried(t *testing.T) {
	bad := json.RawMessage("すみません、提案できません")
	model := &scriptedModel{
		responses: []json.RawMessage{bad, bad, bad, bad, bad},
	}
	service := newTestService(model)

	_, err := service.SuggestMenu(context.Background(), []domain.ProductRecord{
		product("にんじん", "2025-05-10"),
	})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, defaultAttempts, model.calls)
}
