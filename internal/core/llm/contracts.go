package llm

import "context"

// CompletionRequest is one chat completion: a system message and a single user turn.
type CompletionRequest struct {
	System string
	Prompt string
	// MaxTokens caps the reply. Zero leaves the provider default.
	MaxTokens int
}

// Completer is the naming service contract. Implementations return the
// completion texts in the order the service produced them.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) ([]string, error)
}

// NamingResult is either a candidate name or the reason none was produced.
type NamingResult struct {
	name   string
	reason string
	ok     bool
}

func Success(name string) NamingResult { return NamingResult{name: name, ok: true} }

func Failure(reason string) NamingResult { return NamingResult{reason: reason} }

// OK reports whether the result carries a name.
func (r NamingResult) OK() bool { return r.ok }

// Name is the sanitized candidate; empty on failure.
func (r NamingResult) Name() string { return r.name }

// Reason is the failure text; empty on success.
func (r NamingResult) Reason() string { return r.reason }
