package compare

import "fmt"

// NoTextLayerError reports a page with no extractable words, typically a
// scanned image. Page is zero-based.
type NoTextLayerError struct {
	Path string
	Page int
}

func (e *NoTextLayerError) Error() string {
	return fmt.Sprintf("%s page %d: no extractable text layer", e.Path, e.Page+1)
}

// PageCountMismatchError reports compared documents with different page
// counts when the strict page policy is in effect.
type PageCountMismatchError struct {
	Reference string
	Path      string
	RefPages  int
	Pages     int
}

func (e *PageCountMismatchError) Error() string {
	return fmt.Sprintf("page count mismatch: %s has %d pages, %s has %d",
		e.Reference, e.RefPages, e.Path, e.Pages)
}
