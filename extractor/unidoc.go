package extractor

import (
	"context"
	"fmt"
	"os"

	uniextractor "github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/wudi/pdfdiff/geo"
)

// UniDocSource extracts words using unipdf's text marks. Marks arrive in
// reading order with per-glyph bounding boxes; groupWords assembles them
// into word tokens.
type UniDocSource struct{}

// NewUniDocSource returns a unipdf-backed word source.
func NewUniDocSource() *UniDocSource { return &UniDocSource{} }

// Extract implements Source.
func (s *UniDocSource) Extract(ctx context.Context, path string) ([]PageWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("page count of %q: %w", path, err)
	}

	out := make([]PageWords, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := reader.GetPage(pageNum)
		if err != nil {
			return nil, fmt.Errorf("%q page %d: %w", path, pageNum, err)
		}
		ex, err := uniextractor.New(page)
		if err != nil {
			return nil, fmt.Errorf("%q page %d: %w", path, pageNum, err)
		}
		pageText, _, _, err := ex.ExtractPageText()
		if err != nil {
			return nil, fmt.Errorf("%q page %d: extract text: %w", path, pageNum, err)
		}

		marks := pageText.Marks().Elements()
		glyphs := make([]glyph, 0, len(marks))
		for _, mark := range marks {
			if mark.Text == "" {
				continue
			}
			glyphs = append(glyphs, glyph{
				Text: mark.Text,
				Box:  geo.NewRect(mark.BBox.Llx, mark.BBox.Lly, mark.BBox.Urx, mark.BBox.Ury),
			})
		}
		out = append(out, PageWords{Page: pageNum - 1, Words: groupWords(glyphs, pageNum-1)})
	}
	return out, nil
}
