package domain

var (
	MessageFailedAnalyzeImage = "failed to analyze product image"
	MessageFailedFileRequired = "image file is required"
	MessageFailedNotImage     = "uploaded file must be an image"
)

// Expiration date kinds as printed on Japanese packaging.
const (
	ExpirationBestBefore = "best_before" // 賞味期限
	ExpirationUseBy      = "use_by"      // 消費期限
)

type (
	// ProductRecord is the structured metadata extracted from a single
	// product photo. ImageURL is always set server-side from the blob
	// store upload; whatever the model echoes back is discarded.
	ProductRecord struct {
		Name           string  `json:"name"`
		ExpirationDate string  `json:"expiration_date"`
		ExpirationType string  `json:"expiration_type,omitempty"`
		ImageURL       string  `json:"image_url"`
		Amount         float64 `json:"amount"`
		Unit           string  `json:"unit"`
		Category       string  `json:"category"`
	}
)

// SeedProducts is the sample inventory served by GET /seed for frontend
// development without a camera.
var SeedProducts = []ProductRecord{
	{
		Name:           "にんじん",
		ExpirationDate: "2025-05-10",
		ImageURL:       "https://source.unsplash.com/random/300x200/?carrot",
		Amount:         300,
		Unit:           "g",
		Category:       "野菜",
	},
	{
		Name:           "豚肉",
		ExpirationDate: "2025-04-30",
		ImageURL:       "https://source.unsplash.com/random/300x200/?pork",
		Amount:         500,
		Unit:           "g",
		Category:       "肉",
	},
	{
		Name:           "じゃがいも",
		ExpirationDate: "2025-05-15",
		ImageURL:       "https://source.unsplash.com/random/300x200/?potato",
		Amount:         400,
		Unit:           "g",
		Category:       "野菜",
	},
}
