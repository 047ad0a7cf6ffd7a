package diff

import (
	"testing"

	"github.com/wudi/pdfdiff/extractor"
)

func tokens(doc int, texts ...string) []extractor.Word {
	words := make([]extractor.Word, len(texts))
	for i, t := range texts {
		words[i] = extractor.Word{Text: t, Doc: doc}
	}
	return words
}

func kinds(runs []Run) []Kind {
	out := make([]Kind, len(runs))
	for i, r := range runs {
		out[i] = r.Kind
	}
	return out
}

func TestIdenticalSequences(t *testing.T) {
	a := tokens(0, "The", "quick", "fox")
	b := tokens(1, "The", "quick", "fox")
	runs := Compare(a, b, Options{})
	if len(runs) != 1 || runs[0].Kind != Equal {
		t.Fatalf("identical inputs: got %v", kinds(runs))
	}
	if len(runs[0].TokensA) != 3 || len(runs[0].TokensB) != 3 {
		t.Fatalf("equal run should cover all tokens: %+v", runs[0])
	}
}

func TestSingleInsert(t *testing.T) {
	a := tokens(0, "The", "quick", "fox")
	b := tokens(1, "The", "quick", "brown", "fox")
	runs := Compare(a, b, Options{})

	want := []Kind{Equal, Insert, Equal}
	got := kinds(runs)
	if len(got) != len(want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("runs = %v, want %v", got, want)
		}
	}
	ins := runs[1]
	if len(ins.TokensA) != 0 || len(ins.TokensB) != 1 || ins.TokensB[0].Text != "brown" {
		t.Fatalf("insert run = %+v", ins)
	}
}

func TestDeleteAndReplace(t *testing.T) {
	a := tokens(0, "one", "two", "three")
	b := tokens(1, "one", "dos", "three")
	runs := Compare(a, b, Options{})
	if len(runs) != 3 || runs[1].Kind != Replace {
		t.Fatalf("replace not detected: %v", kinds(runs))
	}
	if runs[1].TokensA[0].Text != "two" || runs[1].TokensB[0].Text != "dos" {
		t.Fatalf("replace run = %+v", runs[1])
	}

	runs = Compare(a, tokens(1, "one", "three"), Options{})
	if len(runs) != 3 || runs[1].Kind != Delete {
		t.Fatalf("delete not detected: %v", kinds(runs))
	}
	if len(runs[1].TokensA) != 1 || len(runs[1].TokensB) != 0 {
		t.Fatalf("delete run = %+v", runs[1])
	}
}

func TestWhitespaceNeverDiffers(t *testing.T) {
	// Embedded and trailing whitespace in token text must not register.
	a := tokens(0, "a  b", "c ")
	b := tokens(1, "ab", "c")
	runs := Compare(a, b, Options{})
	for _, r := range runs {
		if r.Kind != Equal {
			t.Fatalf("whitespace-only difference produced %v run", r.Kind)
		}
	}

	// Whitespace-only tokens are dropped entirely.
	runs = Compare(tokens(0, "a", " ", "b"), tokens(1, "a", "b"), Options{})
	if len(runs) != 1 || runs[0].Kind != Equal {
		t.Fatalf("whitespace-only token joined a run: %v", kinds(runs))
	}
}

func TestCaseFolding(t *testing.T) {
	a := tokens(0, "Fox")
	b := tokens(1, "fox")
	if runs := Compare(a, b, Options{}); runs[0].Kind != Equal {
		t.Fatalf("default comparison should fold case")
	}
	runs := Compare(a, b, Options{CaseSensitive: true})
	if len(runs) != 1 || runs[0].Kind != Replace {
		t.Fatalf("case-sensitive comparison: got %v", kinds(runs))
	}
}

func TestRunsCoverBothInputs(t *testing.T) {
	a := tokens(0, "x", "y", "z", "w")
	b := tokens(1, "y", "q", "w", "v")
	runs := Compare(a, b, Options{})
	var na, nb int
	for _, r := range runs {
		na += len(r.TokensA)
		nb += len(r.TokensB)
	}
	if na != len(a) || nb != len(b) {
		t.Fatalf("coverage a=%d/%d b=%d/%d", na, len(a), nb, len(b))
	}
}
