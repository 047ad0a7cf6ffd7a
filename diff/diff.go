// Package diff aligns two word-token sequences and reports the edit script
// as runs of equal, inserted, deleted and replaced tokens. Matching happens
// over normalized word text (whitespace stripped, case folded unless
// configured otherwise); token positions ride along untouched.
package diff

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/wudi/pdfdiff/extractor"
)

// Kind classifies a run of the edit script.
type Kind int

const (
	Equal Kind = iota
	Insert
	Delete
	Replace
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	}
	return "unknown"
}

// Run is a maximal span of the edit script of one kind. TokensA holds the
// words of the reference side, TokensB the words of the compared side;
// either may be empty depending on the kind.
type Run struct {
	Kind    Kind
	TokensA []extractor.Word
	TokensB []extractor.Word
}

// Options controls text normalization before matching.
type Options struct {
	// CaseSensitive disables case folding. Comparison is case-insensitive
	// by default.
	CaseSensitive bool
}

// Compare aligns the two token sequences and returns the edit script
// covering both inputs with no gaps. Tokens whose text is whitespace-only
// are dropped before matching, so whitespace differences never surface as
// runs. Tie-breaking between minimal edit scripts follows the sequence
// matcher's default of maximizing contiguous equal runs.
func Compare(a, b []extractor.Word, opts Options) []Run {
	a = dropEmpty(a, opts)
	b = dropEmpty(b, opts)

	textsA := normalizeAll(a, opts)
	textsB := normalizeAll(b, opts)

	matcher := difflib.NewMatcher(textsA, textsB)
	opcodes := matcher.GetOpCodes()

	runs := make([]Run, 0, len(opcodes))
	for _, op := range opcodes {
		run := Run{
			TokensA: a[op.I1:op.I2],
			TokensB: b[op.J1:op.J2],
		}
		switch op.Tag {
		case 'e':
			run.Kind = Equal
		case 'i':
			run.Kind = Insert
		case 'd':
			run.Kind = Delete
		case 'r':
			run.Kind = Replace
		}
		runs = append(runs, run)
	}
	return runs
}

// Normalize returns the comparison form of a word: all Unicode whitespace
// removed, case folded unless opts says otherwise.
func Normalize(text string, opts Options) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if !opts.CaseSensitive {
		text = strings.ToLower(text)
	}
	return text
}

func normalizeAll(words []extractor.Word, opts Options) []string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = Normalize(w.Text, opts)
	}
	return texts
}

// dropEmpty filters out tokens that normalize to the empty string. They
// carry no comparable content and must never join a run.
func dropEmpty(words []extractor.Word, opts Options) []extractor.Word {
	kept := words[:0:0]
	for _, w := range words {
		if Normalize(w.Text, opts) != "" {
			kept = append(kept, w)
		}
	}
	return kept
}
