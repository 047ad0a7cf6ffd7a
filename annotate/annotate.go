// Package annotate renders highlight regions onto a copy of a PDF document.
// Pages are re-emitted through a creator and each region becomes a
// translucent filled rectangle; the source file is never modified.
package annotate

import (
	"context"
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/wudi/pdfdiff/geo"
	"github.com/wudi/pdfdiff/highlight"
)

// DefaultOpacity is the fill opacity used when none is configured.
const DefaultOpacity = 0.4

// Annotator draws highlight regions over document pages.
type Annotator struct {
	// Opacity of the highlight fill, in (0, 1].
	Opacity float64
}

// New returns an annotator with the given fill opacity; values outside
// (0, 1] fall back to DefaultOpacity.
func New(opacity float64) *Annotator {
	if opacity <= 0 || opacity > 1 {
		opacity = DefaultOpacity
	}
	return &Annotator{Opacity: opacity}
}

// Annotate writes a copy of the document at srcPath to dstPath with one
// translucent rectangle drawn per region. Regions must already be filtered
// to this document; their page indices are zero-based.
func (a *Annotator) Annotate(ctx context.Context, srcPath, dstPath string, regions []highlight.Region) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %q: %w", srcPath, err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return fmt.Errorf("read %q: %w", srcPath, err)
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return fmt.Errorf("page count of %q: %w", srcPath, err)
	}

	byPage := highlight.ByPage(regions)

	c := creator.New()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := reader.GetPage(pageNum)
		if err != nil {
			return fmt.Errorf("%q page %d: %w", srcPath, pageNum, err)
		}
		mediaBox, err := page.GetMediaBox()
		if err != nil {
			return fmt.Errorf("%q page %d: media box: %w", srcPath, pageNum, err)
		}
		if page.MediaBox == nil {
			// MediaBox inherited from the page tree parent; the creator
			// needs it set on the page itself.
			page.MediaBox = mediaBox
		}
		if err := c.AddPage(page); err != nil {
			return fmt.Errorf("%q page %d: add page: %w", srcPath, pageNum, err)
		}

		pageHeight := mediaBox.Ury
		for _, region := range byPage[pageNum-1] {
			x, y, w, h := pageRect(region.Box, pageHeight)
			rect := c.NewRectangle(x, y, w, h)
			r8, g8, b8 := region.Color.RGB255()
			rect.SetFillColor(creator.ColorRGBFrom8bit(r8, g8, b8))
			rect.SetFillOpacity(a.Opacity)
			rect.SetBorderWidth(0)
			if err := c.Draw(rect); err != nil {
				return fmt.Errorf("%q page %d: draw region: %w", srcPath, pageNum, err)
			}
		}
	}

	if err := c.WriteToFile(dstPath); err != nil {
		return fmt.Errorf("write %q: %w", dstPath, err)
	}
	return nil
}

// pageRect converts a page-space box (origin bottom-left) to creator
// coordinates (origin top-left): the y position is the box's bottom edge
// measured from the page top and the height extends upward, hence negative.
func pageRect(box geo.Rect, pageHeight float64) (x, y, w, h float64) {
	return box.Llx, pageHeight - box.Lly, box.Width(), -box.Height()
}
