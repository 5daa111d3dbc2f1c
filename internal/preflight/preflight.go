// Package preflight probes a document for an extractable text layer before
// the classification run starts. A newspaper scan without text would feed
// empty pages to the classifier; the probe lets the CLI warn up front.
package preflight

import (
	"math/rand"
	"regexp"
	"sort"
	"time"

	"github.com/local/pressclip/internal/extract"
)

// DefaultThreshold is the minimum number of non-whitespace runes across the
// sampled pages for the document to count as text-bearing.
const DefaultThreshold = 300

// Source yields pages for probing. *extract.Document satisfies it.
type Source interface {
	NumPages() int
	Page(i int) (extract.Page, error)
}

// Diagnostics describes one probe run.
type Diagnostics struct {
	TotalPages    int
	SampledPages  []int
	CharsInSample int
	Threshold     int
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// HasTextLayer samples up to five pages and reports whether the document
// appears to carry extractable text. Page-level extraction errors only skip
// the affected probe.
func HasTextLayer(src Source, threshold int) (bool, *Diagnostics) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	total := src.NumPages()
	diag := &Diagnostics{TotalPages: total, Threshold: threshold}
	if total <= 0 {
		diag.SampledPages = []int{}
		return false, diag
	}

	diag.SampledPages = sampleIndices(total)

	for _, idx := range diag.SampledPages {
		page, err := src.Page(idx)
		if err != nil {
			continue
		}
		cleaned := whitespaceRegex.ReplaceAllString(page.Text, "")
		diag.CharsInSample += len([]rune(cleaned))
		if diag.CharsInSample >= threshold {
			break
		}
	}

	return diag.CharsInSample >= threshold, diag
}

// sampleIndices picks up to five pages: all of them for short documents,
// otherwise first, middle, last plus random distinct fillers.
func sampleIndices(total int) []int {
	if total <= 5 {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	picked := map[int]struct{}{0: {}, total / 2: {}, total - 1: {}}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for len(picked) < 5 {
		picked[rnd.Intn(total)] = struct{}{}
	}

	out := make([]int, 0, len(picked))
	for i := range picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
