package domain

import "encoding/json"

var (
	MessageFailedUploadJSON = "failed to upload JSON document"
	MessageFailedGetJSON    = "failed to get JSON document"
	MessageDocumentNotFound = "document not found"
)

type (
	UploadJSONRequest struct {
		ID   string          `json:"id" validate:"required"`
		Data json.RawMessage `json:"data" validate:"required"`
	}

	UploadJSONResponse struct {
		URL string `json:"url"`
	}
)
