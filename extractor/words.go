package extractor

import (
	"sort"
	"strings"

	"github.com/wudi/pdfdiff/geo"
)

// glyph is a text fragment as delivered by a backend: a single character,
// ligature, or short run, with its bounding box. Backends convert their
// native mark/run types to glyphs and let groupWords assemble word tokens.
type glyph struct {
	Text string
	Box  geo.Rect
}

// wordGapFactor is the fraction of a glyph's height beyond which a
// horizontal gap between adjacent glyphs starts a new word.
const wordGapFactor = 0.3

// groupWords assembles glyphs (assumed to be in reading order) into word
// tokens. Whitespace-only glyphs terminate the current word and are
// discarded; so do row changes and horizontal gaps wider than a fraction of
// the glyph height.
func groupWords(glyphs []glyph, page int) []Word {
	var words []Word
	var text strings.Builder
	var box geo.Rect
	var prev *glyph

	flush := func() {
		if t := strings.TrimSpace(text.String()); t != "" {
			words = append(words, Word{Text: t, Box: box, Page: page})
		}
		text.Reset()
		box = geo.Rect{}
	}

	for i := range glyphs {
		g := &glyphs[i]
		if strings.TrimSpace(g.Text) == "" {
			flush()
			prev = g
			continue
		}
		if prev != nil && text.Len() > 0 && (!sameRow(prev.Box, g.Box) || gap(prev.Box, g.Box) > wordGapFactor*rowHeight(prev.Box, g.Box)) {
			flush()
		}
		text.WriteString(g.Text)
		box = box.Union(g.Box)
		prev = g
	}
	flush()
	return words
}

// sameRow reports whether two boxes share any vertical extent.
func sameRow(a, b geo.Rect) bool {
	return a.Lly < b.Ury && b.Lly < a.Ury
}

// gap returns the horizontal distance from the right edge of a to the left
// edge of b.
func gap(a, b geo.Rect) float64 {
	return b.Llx - a.Urx
}

func rowHeight(a, b geo.Rect) float64 {
	if h := a.Height(); h >= b.Height() {
		return h
	}
	return b.Height()
}

// sortReadingOrder orders glyphs top-to-bottom, left-to-right. Glyphs are
// first sorted by their top edge, then clustered into rows: a glyph joins
// the current row while it vertically overlaps the row's running bounding
// box, so baseline jitter within a line does not split or reorder it. Each
// row is then ordered by Llx.
func sortReadingOrder(glyphs []glyph) {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].Box.Ury > glyphs[j].Box.Ury
	})
	for start := 0; start < len(glyphs); {
		rowBox := glyphs[start].Box
		end := start + 1
		for end < len(glyphs) && sameRow(rowBox, glyphs[end].Box) {
			rowBox = rowBox.Union(glyphs[end].Box)
			end++
		}
		row := glyphs[start:end]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Box.Llx < row[j].Box.Llx
		})
		start = end
	}
}
