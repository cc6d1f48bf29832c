package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
)

func TestCompleteJoinsCandidateParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Utility Bill "},{"text":"June 2024"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", BaseURL: srv.URL, Model: "gemini-test"}, nil)
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), llm.CompletionRequest{System: llm.SystemPrompt, Prompt: "bill"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Utility Bill June 2024"}, out)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", BaseURL: srv.URL, Model: "gemini-test"}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), llm.CompletionRequest{Prompt: "bill"})
	require.ErrorIs(t, err, common.ErrNamingService)
	assert.Contains(t, err.Error(), "API key not valid")
}
