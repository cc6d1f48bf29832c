package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
)

// Config for the OpenAI client.
type Config struct {
	APIKey      string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // default gpt-4
	Temperature float32       // 0..2; zero leaves the service default
	Timeout     time.Duration // http client timeout
}

// Client talks to an OpenAI-compatible chat/completions endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	envelope   *jsonschema.Schema
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := llm.CompileSchema(llm.ChatCompletionSchema())
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		envelope:   schema,
		log:        logger,
	}, nil
}
