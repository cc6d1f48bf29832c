package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
)

var _ llm.Completer = (*Client)(nil)

// Complete implements llm.Completer using text-only chat/completions.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) ([]string, error) {
	start := time.Now()

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
	}
	if c.cfg.Temperature > 0 {
		body["temperature"] = c.cfg.Temperature
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		var se *llm.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w: openai status %d: %s", common.ErrNamingService, se.Status, errorMessage(se.Body))
		}
		return nil, fmt.Errorf("%w: openai: %v", common.ErrNamingService, err)
	}

	if err := llm.ValidateJSON(c.envelope, raw); err != nil {
		c.log.Error("llm.complete.schema_validation_failed",
			"model", c.cfg.Model, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("%w: malformed openai response: %v", common.ErrNamingService, err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("%w: decode openai response: %v", common.ErrNamingService, err)
	}

	out := make([]string, 0, len(cc.Choices))
	for _, ch := range cc.Choices {
		out = append(out, ch.Message.Content)
	}
	c.log.Debug("llm.complete.ok",
		"model", c.cfg.Model,
		"choices", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// errorMessage pulls error.message out of an OpenAI error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	if s == "" {
		return "empty response body"
	}
	return s
}
