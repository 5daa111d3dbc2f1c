package selector

import (
	"fmt"
	"io"
)

// Reporter observes per-page decisions as they are made. Implementations are
// side-effecting only and must not influence the selection.
type Reporter interface {
	Report(d Decision)
}

// ConsoleReporter prints one human-readable line per decision. The format is
// informational, not a machine-readable contract. With OnlyIncluded set
// (simple variant) excluded pages stay silent.
type ConsoleReporter struct {
	Out          io.Writer
	OnlyIncluded bool
}

func (r *ConsoleReporter) Report(d Decision) {
	if r.OnlyIncluded && !d.Included {
		return
	}
	verdict := "skip"
	if d.Included {
		verdict = "keep"
	}
	// Pages are numbered 1-based for humans.
	fmt.Fprintf(r.Out, "  -> page %d: %s (%s) [%s]\n", d.Page+1, d.Label, d.Source, verdict)
}
