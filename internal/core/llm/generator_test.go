package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	out   []string
	err   error
	panic bool
	reqs  []CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req CompletionRequest) ([]string, error) {
	s.reqs = append(s.reqs, req)
	if s.panic {
		panic("boom")
	}
	return s.out, s.err
}

func TestGenerateSuccess(t *testing.T) {
	c := &stubCompleter{out: []string{"  Invoice ACME March 2024\n", "ignored"}}
	g := NewGenerator(c, nil)

	res := g.Generate(context.Background(), "ACME Corp invoice")
	require.True(t, res.OK())
	assert.Equal(t, "Invoice_ACME_March_2024", res.Name())
	assert.Empty(t, res.Reason())

	require.Len(t, c.reqs, 1)
	assert.Equal(t, SystemPrompt, c.reqs[0].System)
	assert.Contains(t, c.reqs[0].Prompt, "4–6 words")
	assert.Contains(t, c.reqs[0].Prompt, "ACME Corp invoice")
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name   string
		c      *stubCompleter
		reason string
	}{
		{"service error", &stubCompleter{err: errors.New("openai status 401: invalid api key")}, "invalid api key"},
		{"no completions", &stubCompleter{}, "no completions"},
		{"unusable name", &stubCompleter{out: []string{`""`}}, "unusable name"},
		{"panic", &stubCompleter{panic: true}, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewGenerator(tt.c, nil).Generate(context.Background(), "text")
			require.False(t, res.OK())
			assert.Empty(t, res.Name())
			assert.Contains(t, res.Reason(), tt.reason)
			assert.Len(t, tt.c.reqs, 1)
		})
	}
}

func TestGenerateNilCompleter(t *testing.T) {
	res := NewGenerator(nil, nil).Generate(context.Background(), "text")
	assert.False(t, res.OK())
}

func TestGenerateRateLimitInterrupted(t *testing.T) {
	c := &stubCompleter{out: []string{"name"}}
	g := NewGenerator(c, nil, WithRequestsPerMinute(1))

	require.True(t, g.Generate(context.Background(), "first").OK())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res := g.Generate(ctx, "second")
	require.False(t, res.OK())
	assert.Contains(t, res.Reason(), "rate limit")
	assert.Len(t, c.reqs, 1)
}
