package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumind/interview-insight/internal/adapter/ai/openrouter"
	"github.com/resumind/interview-insight/internal/config"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		AppEnv:            "test",
		OpenRouterAPIKey:  "test-key",
		OpenRouterBaseURL: baseURL,
		ChatModel:         "deepseek/deepseek-chat",
		ChatTimeout:       2 * time.Second,
		ChatMaxTokens:     256,
	}
}

func TestChatJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek/deepseek-chat", req["model"])
		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "deepseek/deepseek-chat",
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"ok":true}`}},
			},
		})
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL))
	got, err := c.ChatJSON(context.Background(), "sys", "user", 0)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
}

func TestChatJSON_MissingKey(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")
	cfg.OpenRouterAPIKey = ""
	c := openrouter.New(cfg)
	_, err := c.ChatJSON(context.Background(), "sys", "user", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
}

func TestChatJSON_4xxIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL))
	_, err := c.ChatJSON(context.Background(), "sys", "user", 10)
	require.Error(t, err)
	// Permanent error: no retries after the first attempt
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestChatJSON_RetriesOn5xxThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL))
	got, err := c.ChatJSON(context.Background(), "sys", "user", 10)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestChatJSON_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL))
	_, err := c.ChatJSON(context.Background(), "sys", "user", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}
