package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessenger(apiBase, dataBase string) *lineMessenger {
	return &lineMessenger{
		channelToken: "channel-token",
		apiBase:      apiBase,
		dataBase:     dataBase,
		httpClient:   &http.Client{Timeout: time.Second},
	}
}

func TestReplyTextSendsPayload(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	messenger := newTestMessenger(server.URL, server.URL)
	err := messenger.ReplyText(context.Background(), "token-1", "こんにちは")
	require.NoError(t, err)

	assert.Equal(t, "/v2/bot/message/reply", gotPath)
	assert.Equal(t, "Bearer channel-token", gotAuth)
	assert.Equal(t, "token-1", gotBody["replyToken"])

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "こんにちは", messages[0].(map[string]any)["text"])
}

func TestReplyTextReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid reply token"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	messenger := newTestMessenger(server.URL, server.URL)
	err := messenger.ReplyText(context.Background(), "expired", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid reply token")
}

func TestMessageContentFetchesBytes(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	messenger := newTestMessenger(server.URL, server.URL)
	data, contentType, err := messenger.MessageContent(context.Background(), "msg-42")
	require.NoError(t, err)

	assert.Equal(t, "/v2/bot/message/msg-42/content", gotPath)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestMessageContentReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer server.Close()

	messenger := newTestMessenger(server.URL, server.URL)
	_, _, err := messenger.MessageContent(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
