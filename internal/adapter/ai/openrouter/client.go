// Package openrouter implements domain.AIClient against the OpenRouter
// chat-completions API (OpenAI-compatible wire format).
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/config"
	"github.com/resumind/interview-insight/internal/domain"
	"github.com/resumind/interview-insight/pkg/textx"
)

// Client implements domain.AIClient using OpenRouter chat completions.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a client with the configured request timeout. A missing API
// key is logged as a warning rather than treated as fatal: analyses degrade
// to their deterministic fallbacks when calls fail.
func New(cfg config.Config) *Client {
	if cfg.OpenRouterAPIKey == "" {
		slog.Warn("OPENROUTER_API_KEY not configured; AI-backed analyses will use fallback values",
			slog.String("provider", "openrouter"))
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.ChatTimeout}}
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatJSON calls the chat-completions endpoint and returns the first choice's
// message content. Transport errors and 429/5xx responses are retried with
// exponential backoff; 4xx responses are permanent.
func (c *Client) ChatJSON(ctx domain.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.cfg.OpenRouterAPIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY missing", domain.ErrInvalidArgument)
	}
	if maxTokens <= 0 {
		maxTokens = c.cfg.ChatMaxTokens
	}

	body := map[string]any{
		"model":       c.cfg.ChatModel,
		"temperature": 0.2,
		"max_tokens":  maxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}
	b, _ := json.Marshal(body)

	var out chatResponse
	op := func() error {
		start := time.Now()
		// Recreate the request each attempt to avoid reusing consumed bodies
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenRouterBaseURL+"/chat/completions", bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		r.Header.Set("Authorization", "Bearer "+c.cfg.OpenRouterAPIKey)
		r.Header.Set("Content-Type", "application/json")
		if c.cfg.OpenRouterReferer != "" {
			r.Header.Set("HTTP-Referer", c.cfg.OpenRouterReferer)
		}
		if c.cfg.OpenRouterTitle != "" {
			r.Header.Set("X-Title", c.cfg.OpenRouterTitle)
		}
		resp, err := c.hc.Do(r)
		observability.AIRequestsTotal.WithLabelValues("openrouter", "chat").Inc()
		observability.AIRequestDuration.WithLabelValues("openrouter", "chat").Observe(time.Since(start).Seconds())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("ai provider rate limited",
				slog.String("provider", "openrouter"),
				slog.Int("status", resp.StatusCode),
				slog.String("x_request_id", resp.Header.Get("X-Request-Id")))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			slog.Warn("ai provider 4xx",
				slog.String("provider", "openrouter"),
				slog.Int("status", resp.StatusCode),
				slog.String("model", c.cfg.ChatModel),
				slog.String("body", textx.Truncate(string(bodyBytes), 512)))
			return backoff.Permanent(fmt.Errorf("chat status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("ai provider non-2xx",
				slog.String("provider", "openrouter"),
				slog.Int("status", resp.StatusCode),
				slog.String("body", textx.Truncate(string(bodyBytes), 512)))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			slog.Error("ai provider decode error",
				slog.String("provider", "openrouter"),
				slog.Any("error", err))
			return err
		}
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	maxElapsed, initial, maxIvl, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsed
	expo.InitialInterval = initial
	expo.MaxInterval = maxIvl
	expo.Multiplier = multiplier

	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		slog.Error("openrouter chat failed after retries",
			slog.String("provider", "openrouter"),
			slog.String("model", c.cfg.ChatModel),
			slog.Any("error", err))
		return "", fmt.Errorf("openrouter chat: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices from provider", domain.ErrSchemaInvalid)
	}
	if out.Model != "" && out.Model != c.cfg.ChatModel {
		slog.Warn("model substitution detected",
			slog.String("requested_model", c.cfg.ChatModel),
			slog.String("actual_model", out.Model))
	}
	return out.Choices[0].Message.Content, nil
}
