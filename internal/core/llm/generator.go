package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Generator derives candidate filenames from document text.
type Generator struct {
	completer Completer
	limiter   *rate.Limiter
	logger    *slog.Logger
}

type GeneratorOption func(*Generator)

// WithRequestsPerMinute paces naming requests. Zero or less disables pacing.
func WithRequestsPerMinute(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
		}
	}
}

func NewGenerator(c Completer, logger *slog.Logger, opts ...GeneratorOption) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{completer: c, logger: logger}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate makes one naming request for text. It never retries and never
// returns an error: every failure becomes a Failure carrying its reason.
func (g *Generator) Generate(ctx context.Context, text string) (res NamingResult) {
	rid := uuid.New().String()
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			g.logger.Error("llm.generate.panic", "req_id", rid, "panic", p)
			res = Failure(fmt.Sprintf("naming service panicked: %v", p))
		}
	}()

	if g.completer == nil {
		return Failure("naming service is not configured")
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			g.logger.Warn("llm.generate.rate_limited", "req_id", rid, "error", err)
			return Failure("rate limit wait: " + err.Error())
		}
	}

	g.logger.Debug("llm.generate.start", "req_id", rid, "text_len", utf8.RuneCountInString(text))

	completions, err := g.completer.Complete(ctx, CompletionRequest{
		System: SystemPrompt,
		Prompt: BuildNamingPrompt(text),
	})
	if err != nil {
		g.logger.Warn("llm.generate.failed", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return Failure(err.Error())
	}
	if len(completions) == 0 {
		g.logger.Warn("llm.generate.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return Failure("naming service returned no completions")
	}

	raw := strings.TrimSpace(completions[0])
	name := SanitizeFilename(raw)
	if name == "" {
		g.logger.Warn("llm.generate.empty_name", "req_id", rid, "raw", raw)
		return Failure(fmt.Sprintf("naming service returned an unusable name %q", raw))
	}

	g.logger.Info("llm.generate.ok",
		"req_id", rid,
		"name", name,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Success(name)
}
