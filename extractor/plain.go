package extractor

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/wudi/pdfdiff/geo"
)

// PlainSource extracts words using ledongthuc/pdf. Content runs carry the
// run origin, width and font size, from which an approximate bounding box is
// derived; runs are sorted into reading order before word grouping. Useful
// where the cgo-free, dependency-light path matters more than box fidelity.
type PlainSource struct{}

// NewPlainSource returns a ledongthuc/pdf-backed word source.
func NewPlainSource() *PlainSource { return &PlainSource{} }

// Extract implements Source.
func (s *PlainSource) Extract(ctx context.Context, path string) ([]PageWords, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	out := make([]PageWords, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			out = append(out, PageWords{Page: pageNum - 1})
			continue
		}
		content := page.Content()
		glyphs := make([]glyph, 0, len(content.Text))
		for _, run := range content.Text {
			if run.S == "" {
				continue
			}
			glyphs = append(glyphs, glyph{
				Text: run.S,
				Box:  geo.NewRect(run.X, run.Y, run.X+run.W, run.Y+run.FontSize),
			})
		}
		sortReadingOrder(glyphs)
		out = append(out, PageWords{Page: pageNum - 1, Words: groupWords(glyphs, pageNum-1)})
	}
	return out, nil
}
