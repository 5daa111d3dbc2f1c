package ai

import (
	"context"
	"errors"
	"fmt"
)

// Prompt is the fixed instruction sent with every page. The model must answer
// with a single word from the closed label set; anything else is treated as
// "other" downstream.
const Prompt = `Analyze the following text from a newspaper page. Decide whether the primary content is an editorial (leader, letters to the editor, from-the-editor piece), an opinion piece (op-ed, column, commentary), or anything else (news, sports, advertising, listings).

Respond with exactly one word: editorial, opinion or other.

Text:
---
%s
---`

// Request carries one page's text to a provider.
type Request struct {
	PageNum int
	Text    string
	Model   string
}

// Response is the provider's raw answer. Label parsing happens in the
// classifier, not here.
type Response struct {
	Text      string
	TokensIn  int
	TokensOut int
}

// Client is the remote classification capability. Implementations are real
// provider HTTP clients; tests substitute scripted stubs.
type Client interface {
	Name() string
	Classify(ctx context.Context, req Request) (Response, error)
}

// ErrRateLimited marks provider 429 responses.
var ErrRateLimited = errors.New("rate_limited")

func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// HTTPError is a non-2xx provider response other than 429.
type HTTPError struct {
	Provider   string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s status %d", e.Provider, e.StatusCode)
}

// ForEngine returns the client for a configured engine name. A missing API
// key is a configuration error and must be surfaced before any page is
// processed.
func ForEngine(name string) (Client, error) {
	switch name {
	case "gemini":
		c := NewGeminiClient()
		if c.apiKey == "" {
			return nil, errors.New("missing GEMINI_API_KEY")
		}
		return c, nil
	case "openai":
		c := NewOpenAIClient()
		if c.apiKey == "" {
			return nil, errors.New("missing OPENAI_API_KEY")
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown engine: %s", name)
}
