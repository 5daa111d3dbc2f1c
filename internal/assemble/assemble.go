// Package assemble writes the consolidated output PDF. Selected pages are
// copied from the source byte-for-byte via pdfcpu; nothing is re-rendered.
package assemble

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"
)

// AssemblyError is fatal at the end of a run: either nothing matched or an
// internal invariant was violated. It carries counts so the user can see
// "0 of 40 pages matched" instead of a bare failure.
type AssemblyError struct {
	Selected int
	Total    int
	Reason   string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly failed: %s (%d of %d pages matched)", e.Reason, e.Selected, e.Total)
}

// Assemble copies the pages at the given 0-based indices from inPath into a
// new PDF at outPath, preserving original order. pages must be non-empty,
// strictly ascending and within [0,total).
func Assemble(inPath, outPath string, pages []int, total int) error {
	if len(pages) == 0 {
		return &AssemblyError{Selected: 0, Total: total, Reason: "no pages matched"}
	}

	sel := make([]string, 0, len(pages))
	prev := -1
	for _, p := range pages {
		if p < 0 || p >= total {
			return &AssemblyError{
				Selected: len(pages),
				Total:    total,
				Reason:   fmt.Sprintf("page index %d out of range", p),
			}
		}
		if p <= prev {
			return &AssemblyError{
				Selected: len(pages),
				Total:    total,
				Reason:   fmt.Sprintf("page indices not strictly ascending at %d", p),
			}
		}
		prev = p
		// pdfcpu page selections are 1-based.
		sel = append(sel, strconv.Itoa(p+1))
	}

	if err := api.TrimFile(inPath, outPath, sel, nil); err != nil {
		return fmt.Errorf("write consolidated pdf: %w", err)
	}

	log.Info().
		Str("output", outPath).
		Int("pages", len(pages)).
		Int("total", total).
		Msg("consolidated pdf written")
	return nil
}
