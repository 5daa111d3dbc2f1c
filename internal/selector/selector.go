// Package selector orchestrates extraction and classification across all
// pages of a document and applies the inclusion policy. Pages are processed
// strictly one at a time in ascending order; output order depends on it.
package selector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/local/pressclip/internal/classify"
	"github.com/local/pressclip/internal/extract"
	"github.com/local/pressclip/internal/metrics"
)

// Source yields pages of an opened document. *extract.Document satisfies it;
// tests substitute stubs.
type Source interface {
	NumPages() int
	Page(i int) (extract.Page, error)
}

// PageClassifier labels one page. *classify.Classifier satisfies it.
type PageClassifier interface {
	Classify(ctx context.Context, pageNum int, text string) classify.Result
}

// Decision is the audit record for one page, emitted as the decision is made.
type Decision struct {
	Page     int // 0-based
	Label    classify.Label
	Source   classify.Source
	Included bool
}

// Selection is the ordered outcome of a run over one document.
type Selection struct {
	// Pages holds the 0-based indices to keep, in ascending original order.
	Pages []int
	// Decisions holds one audit record per page of the document.
	Decisions []Decision
	// Total is the page count of the source document.
	Total int
}

// Options control the inclusion predicate.
type Options struct {
	// IncludeOpinion widens the inclusion set from {editorial} to
	// {editorial, opinion} (hybrid variant).
	IncludeOpinion bool
}

// Select classifies every page of src in order and returns the ordered set of
// pages to keep plus the full audit log. Classification outcomes never fail
// the run; only extraction errors and context cancellation do.
func Select(ctx context.Context, src Source, cls PageClassifier, rep Reporter, opts Options) (*Selection, error) {
	total := src.NumPages()
	sel := &Selection{Total: total, Decisions: make([]Decision, 0, total)}

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run aborted at page %d: %w", i, err)
		}

		page, err := src.Page(i)
		if err != nil {
			return nil, err
		}

		res := cls.Classify(ctx, i, page.Text)

		included := res.Label == classify.LabelEditorial ||
			(opts.IncludeOpinion && res.Label == classify.LabelOpinion)

		d := Decision{Page: i, Label: res.Label, Source: res.Source, Included: included}
		sel.Decisions = append(sel.Decisions, d)
		if included {
			sel.Pages = append(sel.Pages, i)
			metrics.IncSelected()
		}
		metrics.IncClassified(string(res.Label), string(res.Source))

		if rep != nil {
			rep.Report(d)
		}

		log.Debug().
			Int("page", i).
			Str("label", string(res.Label)).
			Str("source", string(res.Source)).
			Bool("included", included).
			Msg("page decided")
	}

	log.Info().
		Int("total_pages", total).
		Int("selected", len(sel.Pages)).
		Msg("page selection completed")

	return sel, nil
}
