// Package highlight maps non-equal diff runs to colored rectangle overlays.
// Regions use each token's own bounding box; boxes are never merged across
// tokens since line breaks make them non-contiguous.
package highlight

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wudi/pdfdiff/diff"
	"github.com/wudi/pdfdiff/geo"
)

// Region is a colored rectangle overlay for one changed word.
type Region struct {
	Box   geo.Rect
	Page  int
	Doc   int
	Color colorful.Color
}

// Palette assigns a highlight color to every document index. Document 0 is
// the reference and conventionally needs no color, but one is defined so
// removal regions can be rendered if a caller chooses to.
type Palette struct {
	colors []colorful.Color
}

// defaultHex are the built-in per-document colors: the first compared
// document is red, the second green, then blue, orange, purple.
var defaultHex = []string{"#808080", "#ff0000", "#00c000", "#0000ff", "#ff8000", "#8000ff"}

// DefaultPalette returns the built-in color assignment.
func DefaultPalette() Palette {
	p, err := ParsePalette(defaultHex)
	if err != nil {
		panic(err) // built-in colors are valid hex
	}
	return p
}

// ParsePalette builds a palette from hex color strings ("#rrggbb"), one per
// document index starting at the reference.
func ParsePalette(hex []string) (Palette, error) {
	colors := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("color %d %q: %w", i, h, err)
		}
		colors[i] = c
	}
	return Palette{colors: colors}, nil
}

// Color returns the highlight color for a document index. Indices past the
// configured colors cycle through the non-reference entries.
func (p Palette) Color(doc int) colorful.Color {
	if len(p.colors) == 0 {
		return colorful.Color{}
	}
	if doc < len(p.colors) {
		return p.colors[doc]
	}
	if len(p.colors) == 1 {
		return p.colors[0]
	}
	return p.colors[1+(doc-1)%(len(p.colors)-1)]
}

// Hex returns the color for a document index in "#rrggbb" form.
func (p Palette) Hex(doc int) string {
	return p.Color(doc).Hex()
}

// Len returns the number of configured colors; zero for the zero value.
func (p Palette) Len() int { return len(p.colors) }

// Map converts diff runs to highlight regions. Equal runs produce nothing;
// every token of a non-equal run produces exactly one region with that
// token's box and its source document's color.
func Map(runs []diff.Run, pal Palette) []Region {
	var regions []Region
	for _, run := range runs {
		if run.Kind == diff.Equal {
			continue
		}
		for _, tok := range run.TokensA {
			regions = append(regions, Region{
				Box:   tok.Box,
				Page:  tok.Page,
				Doc:   tok.Doc,
				Color: pal.Color(tok.Doc),
			})
		}
		for _, tok := range run.TokensB {
			regions = append(regions, Region{
				Box:   tok.Box,
				Page:  tok.Page,
				Doc:   tok.Doc,
				Color: pal.Color(tok.Doc),
			})
		}
	}
	return regions
}

// FilterDoc returns the regions belonging to one document.
func FilterDoc(regions []Region, doc int) []Region {
	var out []Region
	for _, r := range regions {
		if r.Doc == doc {
			out = append(out, r)
		}
	}
	return out
}

// ByPage groups regions by page index.
func ByPage(regions []Region) map[int][]Region {
	out := make(map[int][]Region)
	for _, r := range regions {
		out[r.Page] = append(out[r.Page], r)
	}
	return out
}
