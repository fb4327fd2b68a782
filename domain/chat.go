package domain

var (
	MessageFailedCallback   = "failed to process webhook callback"
	MessageInvalidSignature = "webhook signature verification failed"
)

type (
	// WebhookRequest is the payload the chat provider posts to /callback.
	WebhookRequest struct {
		Destination string         `json:"destination"`
		Events      []WebhookEvent `json:"events"`
	}

	WebhookEvent struct {
		Type       string       `json:"type"`
		ReplyToken string       `json:"replyToken"`
		Source     EventSource  `json:"source"`
		Message    EventMessage `json:"message"`
	}

	EventSource struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	}

	EventMessage struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Text string `json:"text"`
	}

	// Session is the per-user accumulated product list. It is persisted
	// as a JSON document under "{userId}.json" after every append.
	Session struct {
		Products []ProductRecord `json:"products"`
	}
)
