package domain

var (
	MessageFailedSuggestMenu = "failed to suggest a menu"
	MessageFailedNoProducts  = "at least one product is required"
)

type (
	SuggestMenuRequest struct {
		Products []ProductRecord `json:"products" validate:"required,min=1"`
	}

	// MenuSuggestion is a single dish proposal built from the
	// soonest-to-expire ingredients.
	MenuSuggestion struct {
		Title       string   `json:"title"`
		Ingredients []string `json:"ingredients"`
		Indication  string   `json:"indication"`
	}
)
