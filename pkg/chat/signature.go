package chat

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ValidSignature verifies the provider's webhook signature header:
// base64 of the HMAC-SHA256 of the raw request body, keyed with the
// channel secret.
func ValidSignature(channelSecret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)

	return hmac.Equal(decoded, mac.Sum(nil))
}
