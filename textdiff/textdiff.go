// Package textdiff measures how far two translations of the same source
// string drifted apart, and produces the character spans a reporter
// needs to show the drift.
package textdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/minios-linux/pokit/textnorm"
)

// SimilarityThreshold is the Jaccard word-overlap index below which two
// translations count as diverging.
const SimilarityThreshold = 0.70

// Result is the outcome of a divergence check.
type Result struct {
	// Diverges is true when the two translations disagree beyond
	// placeholder dialect, punctuation and casing.
	Diverges bool
	// Similarity is the word-overlap index in [0, 1]. Structurally
	// equal pairs score 1.0 without a word comparison.
	Similarity float64
}

// CheckDivergence decides whether two translations of the same source
// say different things. Structural equality is tried first: equal
// placeholder counts, the same question-or-not ending and the same
// lowercased text once placeholders and trailing punctuation are gone
// mean the pair only differs in dialect. Failing that, the Jaccard
// index of the two word sets decides. Two empty word sets compare
// equal. The check is symmetric.
func CheckDivergence(a, b string) Result {
	if dialectEqual(a, b) {
		return Result{Diverges: false, Similarity: 1.0}
	}

	wa := textnorm.WordSet(a)
	wb := textnorm.WordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return Result{Diverges: false, Similarity: 1.0}
	}

	inter := 0
	union := len(wb)
	for w := range wa {
		if wb[w] {
			inter++
		} else {
			union++
		}
	}
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(inter) / float64(union)
	}
	return Result{Diverges: jaccard < SimilarityThreshold, Similarity: jaccard}
}

// dialectEqual reports whether a and b are the same sentence dressed in
// different placeholder shapes, trailing punctuation or casing.
func dialectEqual(a, b string) bool {
	if len(textnorm.ExtractPlaceholders(a)) != len(textnorm.ExtractPlaceholders(b)) {
		return false
	}
	aBase, aQ := textnorm.TrimSentenceEnd(textnorm.RemovePlaceholders(a))
	bBase, bQ := textnorm.TrimSentenceEnd(textnorm.RemovePlaceholders(b))
	if aQ != bQ {
		return false
	}
	return strings.ToLower(aBase) == strings.ToLower(bBase)
}

// ---------------------------------------------------------------------------
// Character diff
// ---------------------------------------------------------------------------

// Op classifies a diff span.
type Op int

const (
	// Equal text present in both strings.
	Equal Op = iota
	// Replace swaps the A text for the B text.
	Replace
	// Delete removes text present only in A.
	Delete
	// Insert adds text present only in B.
	Insert
)

// Span is one segment of a character-level edit script. A holds the
// first string's text, B the second's; Equal spans carry both, Delete
// only A, Insert only B.
type Span struct {
	Op Op
	A  string
	B  string
}

// Diff computes the character-level edit script from a to b. Adjacent
// delete and insert runs merge into a single Replace span, and no two
// adjacent spans share an op. Concatenating the A sides of all spans
// reproduces a, the B sides b.
func Diff(a, b string) []Span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, false))

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = append(spans, Span{Op: Equal, A: d.Text, B: d.Text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, Span{Op: Delete, A: d.Text})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, Span{Op: Insert, B: d.Text})
		}
	}
	return coalesce(spans)
}

// coalesce merges adjacent spans of the same op and folds neighboring
// delete/insert runs into Replace spans.
func coalesce(spans []Span) []Span {
	out := spans[:0:0]
	for _, s := range spans {
		if n := len(out); n > 0 {
			last := &out[n-1]
			switch {
			case last.Op == s.Op:
				last.A += s.A
				last.B += s.B
				continue
			case edits(last.Op) && edits(s.Op):
				last.Op = Replace
				last.A += s.A
				last.B += s.B
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// edits reports whether op changes text rather than keeping it.
func edits(op Op) bool { return op != Equal }
