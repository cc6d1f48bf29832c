package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
)

type Config struct {
	APIKey      string
	BaseURL     string // optional override
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client names documents through the Gemini API.
type Client struct {
	cfg    Config
	client *genai.Client
	log    *slog.Logger
}

var _ llm.Completer = (*Client)(nil)

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize genai client: %v", common.ErrNamingService, err)
	}
	return &Client{cfg: cfg, client: client, log: logger}, nil
}

func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) ([]string, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	if c.cfg.Temperature > 0 {
		config.Temperature = genai.Ptr(c.cfg.Temperature)
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}, config)
	if err != nil {
		c.log.Warn("llm.gemini.error", "model", c.cfg.Model, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: gemini: %v", common.ErrNamingService, err)
	}

	var out []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil && !part.Thought {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	c.log.Debug("llm.gemini.ok",
		"model", c.cfg.Model,
		"candidates", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
