// Package classify decides, per page, whether text belongs to the editorial
// or opinion section. It combines a remote model call (with retry, provider
// failover and a cooldown breaker) with a local keyword fallback, so a single
// misbehaving page or provider never aborts a run.
package classify

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/pressclip/internal/ai"
	"github.com/local/pressclip/internal/keyword"
	"github.com/local/pressclip/internal/metrics"
)

// Label is the closed classification set.
type Label string

const (
	LabelEditorial Label = "editorial"
	LabelOpinion   Label = "opinion"
	LabelOther     Label = "other"
)

// Source records where a page's label came from.
type Source string

const (
	SourceRemote  Source = "remote_model"
	SourceKeyword Source = "keyword_fallback"
	SourceSkipped Source = "skipped"
)

// Result is the per-page classification outcome.
type Result struct {
	Label  Label
	Source Source
}

// Options control the classification policy.
type Options struct {
	// MinTextLen is the threshold below which a page never reaches the
	// remote model.
	MinTextLen int
	// FallbackEnabled selects the hybrid variant: keyword fallback for
	// sparse pages and for remote failures. When false (simple variant)
	// those pages are skipped instead.
	FallbackEnabled bool
	// MaxRetries is the number of extra attempts per provider on a
	// transient failure.
	MaxRetries int
	// RequestTimeout bounds each individual provider call.
	RequestTimeout time.Duration
	// MaxPromptChars truncates page text before it is sent remotely.
	MaxPromptChars int
}

type provider struct {
	client ai.Client
	model  string
}

// Classifier labels pages. It is not safe for concurrent use; the pipeline is
// strictly sequential per page.
type Classifier struct {
	providers []provider
	breaker   *Breaker
	opts      Options
}

// New builds a classifier. secondary may be nil when only one engine is
// configured.
func New(opts Options, primary ai.Client, primaryModel string, secondary ai.Client, secondaryModel string, breaker *Breaker) *Classifier {
	if opts.MinTextLen <= 0 {
		opts.MinTextLen = 100
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.MaxPromptChars <= 0 {
		opts.MaxPromptChars = 10000
	}
	if breaker == nil {
		breaker = NewBreaker(0, 0)
	}

	c := &Classifier{breaker: breaker, opts: opts}
	c.providers = append(c.providers, provider{client: primary, model: primaryModel})
	if secondary != nil {
		c.providers = append(c.providers, provider{client: secondary, model: secondaryModel})
	}
	return c
}

// Classify labels one page. It never returns an error: remote failures
// degrade to the keyword fallback (hybrid) or to a skipped page (simple).
func (c *Classifier) Classify(ctx context.Context, pageNum int, text string) Result {
	stripped := strings.TrimSpace(text)
	if len([]rune(stripped)) < c.opts.MinTextLen {
		log.Debug().Int("page", pageNum).Int("chars", len(stripped)).Msg("page below text threshold, skipping remote call")
		return c.local(text)
	}

	if label, ok := c.remote(ctx, pageNum, text); ok {
		return Result{Label: label, Source: SourceRemote}
	}
	return c.local(text)
}

// local applies the no-remote policy for a page.
func (c *Classifier) local(text string) Result {
	if !c.opts.FallbackEnabled {
		return Result{Label: LabelOther, Source: SourceSkipped}
	}
	return Result{Label: ParseLabel(keyword.Decide(text)), Source: SourceKeyword}
}

// remote walks the configured providers in order: each gets one call plus
// MaxRetries on transient failures, behind its breaker. The first answer
// wins; an unrecognized answer is still an answer and maps to Other.
func (c *Classifier) remote(ctx context.Context, pageNum int, text string) (Label, bool) {
	prompt := truncate(text, c.opts.MaxPromptChars)

	for _, p := range c.providers {
		name := p.client.Name()
		if c.breaker.IsOpen(name) {
			log.Debug().Str("provider", name).Int("page", pageNum).Msg("breaker open, skipping provider")
			continue
		}

		for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
			cctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
			start := time.Now()
			resp, err := p.client.Classify(cctx, ai.Request{PageNum: pageNum, Text: prompt, Model: p.model})
			dur := time.Since(start)
			cancel()

			if err == nil {
				c.breaker.Reset(name)
				metrics.ObserveProvider(name, p.model, "success", dur)
				return ParseLabel(resp.Text), true
			}

			result := "transient"
			if ai.IsRateLimited(err) {
				result = "rate_limited"
			} else if isFatalError(err) {
				result = "fatal"
			} else if !isTransientError(err) {
				result = "unknown"
			}
			metrics.ObserveProvider(name, p.model, result, dur)

			log.Warn().
				Err(err).
				Int("page", pageNum).
				Str("provider", name).
				Str("model", p.model).
				Int("attempt", attempt+1).
				Str("result", result).
				Msg("remote classification call failed")

			if isFatalError(err) {
				// Retrying the same request cannot help; move on.
				break
			}
			if isTransientError(err) {
				c.breaker.Trip(name)
			}
			if ctx.Err() != nil {
				return "", false
			}
		}
	}

	return "", false
}

// ParseLabel maps a raw model answer to a Label. Matching is case-insensitive
// on the bare word with surrounding whitespace, quotes and punctuation
// stripped; anything else maps to Other.
func ParseLabel(raw string) Label {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "\"'`.,!: \t\r\n"))
	switch s {
	case "editorial":
		return LabelEditorial
	case "opinion":
		return LabelOpinion
	default:
		return LabelOther
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
