// Package compose places rasterized pages of several documents side by side
// on combined output pages: the original on the left, one highlighted
// variant per compared document to its right.
package compose

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/unidoc/unipdf/v3/creator"

	"github.com/wudi/pdfdiff/geo"
)

// DefaultDPI is the rasterization resolution used when none is configured.
const DefaultDPI = 150

// Compositor builds the combined side-by-side document.
type Compositor struct {
	// DPI used to rasterize source pages.
	DPI float64
}

// New returns a compositor rasterizing at the given DPI; non-positive values
// fall back to DefaultDPI.
func New(dpi float64) *Compositor {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Compositor{DPI: dpi}
}

// Compose writes a combined document to dstPath. Each output page holds the
// corresponding page of every input, left to right at native page widths;
// the page count is the minimum across inputs. Inputs must not be empty.
func (c *Compositor) Compose(ctx context.Context, paths []string, dstPath string) error {
	if len(paths) == 0 {
		return fmt.Errorf("compose: no input documents")
	}

	docs := make([]*fitz.Document, len(paths))
	for i, path := range paths {
		doc, err := fitz.New(path)
		if err != nil {
			return fmt.Errorf("open %q: %w", path, err)
		}
		defer doc.Close()
		docs[i] = doc
	}

	numPages := docs[0].NumPage()
	for _, doc := range docs[1:] {
		if n := doc.NumPage(); n < numPages {
			numPages = n
		}
	}

	cr := creator.New()
	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		sizes := make([]geo.Size, len(docs))
		images := make([]image.Image, len(docs))
		for i, doc := range docs {
			bounds, err := doc.Bound(pageNum)
			if err != nil {
				return fmt.Errorf("%q page %d: bounds: %w", paths[i], pageNum+1, err)
			}
			// Bound reports pixels at 72 DPI, i.e. points.
			sizes[i] = geo.Size{W: float64(bounds.Dx()), H: float64(bounds.Dy())}

			img, err := doc.ImageDPI(pageNum, c.DPI)
			if err != nil {
				return fmt.Errorf("%q page %d: rasterize: %w", paths[i], pageNum+1, err)
			}
			images[i] = img
		}

		cells, pageSize := rowLayout(sizes)
		cr.SetPageSize(creator.PageSize{pageSize.W, pageSize.H})
		cr.NewPage()

		for i, img := range images {
			cimg, err := cr.NewImageFromGoImage(img)
			if err != nil {
				return fmt.Errorf("%q page %d: place image: %w", paths[i], pageNum+1, err)
			}
			cimg.SetPos(cells[i].Llx, cells[i].Lly)
			cimg.SetWidth(cells[i].Width())
			cimg.SetHeight(cells[i].Height())
			if err := cr.Draw(cimg); err != nil {
				return fmt.Errorf("%q page %d: draw image: %w", paths[i], pageNum+1, err)
			}
		}
	}

	if err := cr.WriteToFile(dstPath); err != nil {
		return fmt.Errorf("write %q: %w", dstPath, err)
	}
	return nil
}

// rowLayout computes the placement of page-sized cells in a single row, left
// to right at native widths, top-aligned. Cells are in creator coordinates
// (origin top-left), so Lly here is the cell's top edge offset.
func rowLayout(sizes []geo.Size) ([]geo.Rect, geo.Size) {
	cells := make([]geo.Rect, len(sizes))
	var page geo.Size
	for _, s := range sizes {
		page.W += s.W
		if s.H > page.H {
			page.H = s.H
		}
	}
	x := 0.0
	for i, s := range sizes {
		cells[i] = geo.Rect{Llx: x, Lly: 0, Urx: x + s.W, Ury: s.H}
		x += s.W
	}
	return cells, page
}
