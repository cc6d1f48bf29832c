package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/pdf-renamer/constants"
)

// Supported naming providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds all application configuration
type Config struct {
	LLM    LLMConfig
	PDF    PDFConfig
	Rename RenameConfig
	Log    LogConfig
}

// LLMConfig holds naming-service configuration
type LLMConfig struct {
	Provider          string
	Model             string
	APIKey            string
	BaseURL           string
	Temperature       float32
	Timeout           time.Duration
	RequestsPerMinute int
}

// PDFConfig holds document tooling configuration
type PDFConfig struct {
	Pdftotext    string
	Pdftoppm     string
	PreviewWidth int
}

// RenameConfig holds batch defaults
type RenameConfig struct {
	MaxTextLength int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	llm := LLMConfig{
		Provider:          provider,
		Temperature:       getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
		Timeout:           getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		RequestsPerMinute: getEnvAsInt("LLM_REQUESTS_PER_MINUTE", 0),
	}
	switch provider {
	case ProviderAnthropic:
		llm.Model = getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
		llm.APIKey = getEnv("ANTHROPIC_API_KEY", "")
		llm.BaseURL = getEnv("ANTHROPIC_BASE_URL", "")
	case ProviderGemini:
		llm.Model = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
		llm.APIKey = getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", ""))
	default:
		llm.Model = getEnv("OPENAI_MODEL", "gpt-4")
		llm.APIKey = getEnv("OPENAI_API_KEY", "")
		llm.BaseURL = getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")
	}

	return &Config{
		LLM: llm,
		PDF: PDFConfig{
			Pdftotext:    getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:     getEnv("PDFTOPPM_BIN", "pdftoppm"),
			PreviewWidth: getEnvAsInt("PREVIEW_WIDTH", constants.PreviewWidthDefault),
		},
		Rename: RenameConfig{
			MaxTextLength: getEnvAsInt("MAX_TEXT_LENGTH", constants.MaxTextLengthDefault),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		return NewAppError("CONFIG_ERROR", "LLM_PROVIDER must be one of openai, anthropic, gemini", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "API key is required for provider "+c.LLM.Provider, ErrInvalidInput)
	}
	if c.Rename.MaxTextLength <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_TEXT_LENGTH must be positive", ErrInvalidInput)
	}
	if c.PDF.PreviewWidth <= 0 {
		return NewAppError("CONFIG_ERROR", "PREVIEW_WIDTH must be positive", ErrInvalidInput)
	}
	return nil
}
