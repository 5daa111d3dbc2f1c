// Package keyword implements the local fallback classifier: fixed term lists
// matched case-insensitively against page text. It is the only classification
// path that never leaves the process.
package keyword

import "strings"

// Term lists are fixed; matching is case-insensitive substring counting.
var (
	editorialTerms = []string{
		"editorial",
		"letters to the editor",
		"letter to the editor",
		"from the editor",
		"our view",
		"leader",
	}
	opinionTerms = []string{
		"opinion",
		"op-ed",
		"commentary",
		"viewpoint",
		"columnist",
		"guest column",
	}
)

// Counts holds per-set match totals for one page.
type Counts struct {
	Editorial int
	Opinion   int
}

// Match counts occurrences of editorial and opinion terms in text.
func Match(text string) Counts {
	lower := strings.ToLower(text)
	var c Counts
	for _, t := range editorialTerms {
		c.Editorial += strings.Count(lower, t)
	}
	for _, t := range opinionTerms {
		c.Opinion += strings.Count(lower, t)
	}
	return c
}

// Decide applies the fallback rule: editorial wins ties with at least one
// match, opinion needs at least one match, otherwise no signal.
// Returned label is one of "editorial", "opinion", "other".
func Decide(text string) string {
	c := Match(text)
	switch {
	case c.Editorial >= c.Opinion && c.Editorial >= 1:
		return "editorial"
	case c.Opinion >= 1:
		return "opinion"
	default:
		return "other"
	}
}
