package extractor

import (
	"testing"

	"github.com/wudi/pdfdiff/geo"
)

// chars lays out one glyph per rune on a single row starting at x, with unit
// advance and height 10.
func chars(s string, x float64) []glyph {
	glyphs := make([]glyph, 0, len(s))
	for _, r := range s {
		glyphs = append(glyphs, glyph{
			Text: string(r),
			Box:  geo.NewRect(x, 0, x+1, 10),
		})
		x++
	}
	return glyphs
}

func TestGroupWordsSplitsOnSpaces(t *testing.T) {
	glyphs := chars("The quick fox", 0)
	words := groupWords(glyphs, 0)
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3: %+v", len(words), words)
	}
	want := []string{"The", "quick", "fox"}
	for i, w := range words {
		if w.Text != want[i] {
			t.Fatalf("word %d = %q, want %q", i, w.Text, want[i])
		}
		if w.Page != 0 {
			t.Fatalf("word %d page = %d", i, w.Page)
		}
	}
	// "The" spans glyphs at x 0..3.
	if b := words[0].Box; b.Llx != 0 || b.Urx != 3 {
		t.Fatalf("box of %q = %v", words[0].Text, b)
	}
	// "quick" starts after the space at x=3.
	if b := words[1].Box; b.Llx != 4 || b.Urx != 9 {
		t.Fatalf("box of %q = %v", words[1].Text, b)
	}
}

func TestGroupWordsSplitsOnRowChange(t *testing.T) {
	row1 := chars("ab", 0)
	row2 := []glyph{
		{Text: "c", Box: geo.NewRect(0, 20, 1, 30)},
		{Text: "d", Box: geo.NewRect(1, 20, 2, 30)},
	}
	words := groupWords(append(row1, row2...), 2)
	if len(words) != 2 || words[0].Text != "ab" || words[1].Text != "cd" {
		t.Fatalf("unexpected words: %+v", words)
	}
}

func TestGroupWordsSplitsOnWideGap(t *testing.T) {
	glyphs := []glyph{
		{Text: "a", Box: geo.NewRect(0, 0, 1, 10)},
		{Text: "b", Box: geo.NewRect(1, 0, 2, 10)},
		// Gap of 8 points on a 10-point row: well past the threshold.
		{Text: "c", Box: geo.NewRect(10, 0, 11, 10)},
	}
	words := groupWords(glyphs, 0)
	if len(words) != 2 || words[0].Text != "ab" || words[1].Text != "c" {
		t.Fatalf("unexpected words: %+v", words)
	}
}

func TestGroupWordsDropsWhitespaceOnly(t *testing.T) {
	glyphs := []glyph{
		{Text: " ", Box: geo.NewRect(0, 0, 1, 10)},
		{Text: "\t", Box: geo.NewRect(1, 0, 2, 10)},
	}
	if words := groupWords(glyphs, 0); len(words) != 0 {
		t.Fatalf("whitespace glyphs produced words: %+v", words)
	}
}

func TestSortReadingOrder(t *testing.T) {
	glyphs := []glyph{
		{Text: "d", Box: geo.NewRect(1, 0, 2, 10)},  // second row
		{Text: "b", Box: geo.NewRect(5, 20, 6, 30)}, // first row, right
		{Text: "c", Box: geo.NewRect(0, 0, 1, 10)},  // second row, left
		{Text: "a", Box: geo.NewRect(0, 21, 1, 31)}, // first row, left
	}
	sortReadingOrder(glyphs)
	got := glyphs[0].Text + glyphs[1].Text + glyphs[2].Text + glyphs[3].Text
	if got != "abcd" {
		t.Fatalf("reading order = %q, want abcd", got)
	}
}

func TestSortReadingOrderOverlapChain(t *testing.T) {
	// Vertical overlap is intransitive: a overlaps b, b overlaps c, but a
	// and c are disjoint. The chain must still land in one row, ordered by
	// x, from any input permutation.
	a := glyph{Text: "a", Box: geo.NewRect(0, 16, 1, 26)}
	b := glyph{Text: "b", Box: geo.NewRect(1, 8, 2, 18)}
	c := glyph{Text: "c", Box: geo.NewRect(2, 0, 3, 10)}

	perms := [][]glyph{
		{a, b, c}, {c, b, a}, {b, a, c}, {c, a, b}, {a, c, b}, {b, c, a},
	}
	for _, glyphs := range perms {
		in := append([]glyph(nil), glyphs...)
		sortReadingOrder(in)
		got := in[0].Text + in[1].Text + in[2].Text
		if got != "abc" {
			t.Fatalf("order = %q for input %v, want abc", got, glyphs)
		}
	}
}

func TestStampDoc(t *testing.T) {
	pages := []PageWords{{Page: 0, Words: []Word{{Text: "a"}, {Text: "b"}}}}
	StampDoc(pages, 2)
	for _, w := range pages[0].Words {
		if w.Doc != 2 {
			t.Fatalf("doc index not stamped: %+v", w)
		}
	}
}
