// Package extractor turns PDF pages into ordered word tokens with bounding
// boxes. Two backends are provided: one on top of unipdf's text marks and a
// dependency-light one on top of ledongthuc/pdf content runs. Both produce
// the same PageWords shape consumed by the diff and highlight stages.
package extractor

import (
	"context"

	"github.com/wudi/pdfdiff/geo"
)

// Word is a single extracted word together with its on-page bounding box.
// Immutable once produced; order within a page follows reading order.
type Word struct {
	Text string
	Box  geo.Rect
	Page int
	Doc  int
}

// PageWords holds the extracted words of one page, in reading order.
type PageWords struct {
	Page  int
	Words []Word
}

// Source is the word-extraction capability the comparison pipeline consumes.
// Page indices in the result are zero-based.
type Source interface {
	Extract(ctx context.Context, path string) ([]PageWords, error)
}

// StampDoc sets the document index on every word of every page. The pipeline
// calls it after extraction since a Source only sees a single file.
func StampDoc(pages []PageWords, doc int) {
	for i := range pages {
		for j := range pages[i].Words {
			pages[i].Words[j].Doc = doc
		}
	}
}
