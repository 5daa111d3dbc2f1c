package extract

import (
	"fmt"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"
)

// ExtractionError indicates the source document could not be opened or read.
// It is fatal for the whole run; no output is written.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Page is a single page's raw text as extracted from the source document.
// Index is 0-based and unique within a document. Text may be empty for
// image-only pages; callers must not assume otherwise.
type Page struct {
	Index int
	Text  string
}

// Document wraps an opened PDF for page-by-page text extraction via MuPDF.
// Pages can be read repeatedly and in any order; the underlying document is
// read-only.
type Document struct {
	path  string
	doc   *fitz.Document
	pages int
}

// Open opens the PDF at path for extraction. A document that cannot be
// opened, or reports no pages at all, yields an *ExtractionError.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	n := doc.NumPage()
	if n <= 0 {
		doc.Close()
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("document has no pages")}
	}

	log.Debug().Str("pdf", path).Int("pages", n).Msg("opened document")
	return &Document{path: path, doc: doc, pages: n}, nil
}

// NumPages returns the page count of the source document.
func (d *Document) NumPages() int { return d.pages }

// Path returns the local filesystem path the document was opened from.
func (d *Document) Path() string { return d.path }

// Page extracts the raw text of the page at the given 0-based index.
// Empty and whitespace-only pages are returned as-is, never dropped.
func (d *Document) Page(i int) (Page, error) {
	if i < 0 || i >= d.pages {
		return Page{}, &ExtractionError{
			Path: d.path,
			Err:  fmt.Errorf("page %d out of range (document has %d pages)", i, d.pages),
		}
	}

	text, err := d.doc.Text(i)
	if err != nil {
		return Page{}, &ExtractionError{
			Path: d.path,
			Err:  fmt.Errorf("text page %d: %w", i, err),
		}
	}

	log.Debug().Str("pdf", d.path).Int("page", i).Int("chars", len(text)).Msg("extracted page text")
	return Page{Index: i, Text: text}, nil
}

// Close releases the underlying MuPDF document.
func (d *Document) Close() error { return d.doc.Close() }
