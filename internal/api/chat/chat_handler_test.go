package chat

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestChatHandler(t *testing.T) {
	handler := NewHandler(NewService(NewDiceMatcher(), slog.Default()), slog.Default())

	t.Run("Success", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Chat(rr, chatRequest(t, map[string]any{"message": "best places in jaipur"}))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp ChatResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Reply, "Here you go"))
		assert.Contains(t, resp.Reply, "Hawa Mahal")
	})

	t.Run("MissingMessage", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Chat(rr, chatRequest(t, map[string]any{"message": ""}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Missing message")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		handler.Chat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
