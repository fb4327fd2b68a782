package domain

import "errors"

var (
	MessageFailedBodyRequest = "failed to process request body"

	// Client-side failures (HTTP 400).
	ErrNotImage         = errors.New("uploaded file is not an image")
	ErrNoProducts       = errors.New("product list is empty")
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// Blob store failures.
	ErrObjectNotFound = errors.New("object not found")
	ErrStorageFailed  = errors.New("object storage request failed")

	// Model provider failures.
	ErrModelFailed       = errors.New("model provider request failed")
	ErrMalformedResponse = errors.New("model returned malformed response")
)
