// Package reconcile implements the catalog-level algorithms of pokit:
// comparing two translations of the same material, filling gaps in one
// catalog from another, linting entries and fixing punctuation.
//
// Operations match entries on canonical keys, so catalogs exported by
// different toolchains line up even when their msgids differ in markup,
// placeholder dialect or final punctuation. Results are ordered by
// canonical key or by the document's own declaration order, never by
// map iteration.
package reconcile

import (
	"sort"
	"strings"

	"github.com/minios-linux/pokit/checks"
	"github.com/minios-linux/pokit/podoc"
	po "github.com/minios-linux/pokit/pofile"
	"github.com/minios-linux/pokit/textdiff"
	"github.com/minios-linux/pokit/textnorm"
)

// Divergence is one source string whose two translations disagree.
type Divergence struct {
	// Display identifies the entry in reports (the stripped msgid).
	Display string
	// ValueA and ValueB are the two translations. For Fill, A is the
	// source catalog's value and B the target's.
	ValueA string
	ValueB string
	// Similarity is the word-overlap score behind the verdict.
	Similarity float64
}

// mapped is one catalog entry filed under its canonical key.
type mapped struct {
	msgID   string
	value   string
	display string
}

// canonicalMap indexes entries by canonical key. A later entry with the
// same key wins; the header, obsolete entries and msgids that normalize
// to nothing stay out.
func canonicalMap(entries []*po.Entry) map[string]mapped {
	m := make(map[string]mapped, len(entries))
	for _, e := range entries {
		if e.MsgID == "" || e.Obsolete {
			continue
		}
		key, disp := textnorm.Canonicalize(e.MsgID)
		if key == "" {
			continue
		}
		m[key] = mapped{msgID: e.MsgID, value: e.Effective(), display: disp}
	}
	return m
}

// ---------------------------------------------------------------------------
// Compare
// ---------------------------------------------------------------------------

// Compare reports entries present in both catalogs whose translations
// diverge. Pairs with two empty translations are skipped. Results are
// sorted by canonical key.
func Compare(a, b []*po.Entry) []Divergence {
	ma := canonicalMap(a)
	mb := canonicalMap(b)

	keys := make([]string, 0, len(ma))
	for k := range ma {
		if _, ok := mb[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []Divergence
	for _, k := range keys {
		ea, eb := ma[k], mb[k]
		if ea.value == "" && eb.value == "" {
			continue
		}
		r := textdiff.CheckDivergence(ea.value, eb.value)
		if !r.Diverges {
			continue
		}
		out = append(out, Divergence{
			Display:    ea.display,
			ValueA:     ea.value,
			ValueB:     eb.value,
			Similarity: r.Similarity,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Fill
// ---------------------------------------------------------------------------

// FillOptions control Fill.
type FillOptions struct {
	// AllowSingleWord lifts the guard against borrowing one-word
	// translations, which carry too little context to trust blindly.
	AllowSingleWord bool
}

// FillCounts report what Fill did with each target entry.
type FillCounts struct {
	Filled                   int
	SkippedSingleWord        int
	SkippedNoSource          int
	SkippedAlreadyTranslated int
}

// Fill copies translations from the source entries into the empty
// entries of the target document, matching on canonical keys. Non-empty
// targets are never overwritten; when one disagrees with its source
// counterpart it is reported as a divergence instead. Borrowed values
// are adapted to the target's placeholder dialect where the msgids
// allow it, and every filled block gains the fuzzy review flag. The
// input document is left unchanged; the returned document shares the
// untouched blocks with it.
func Fill(source []*po.Entry, target *podoc.Document, opts FillOptions) (*podoc.Document, []Divergence, FillCounts) {
	srcMap := canonicalMap(source)

	var counts FillCounts
	var divergences []Divergence
	blocks := make([]podoc.Block, 0, len(target.Blocks))

	for _, b := range target.Blocks {
		e := podoc.ParseBlock(b)
		if e.MsgID == "" {
			blocks = append(blocks, b)
			continue
		}

		key, disp := textnorm.Canonicalize(e.MsgID)
		src, ok := srcMap[key]
		if !ok {
			counts.SkippedNoSource++
			blocks = append(blocks, b)
			continue
		}

		if !e.Value.IsEmpty() {
			if r := textdiff.CheckDivergence(src.value, e.Value.Effective()); r.Diverges {
				divergences = append(divergences, Divergence{
					Display:    disp,
					ValueA:     src.value,
					ValueB:     e.Value.Effective(),
					Similarity: r.Similarity,
				})
			}
			counts.SkippedAlreadyTranslated++
			blocks = append(blocks, b)
			continue
		}

		if strings.TrimSpace(src.value) == "" {
			counts.SkippedNoSource++
			blocks = append(blocks, b)
			continue
		}

		if !opts.AllowSingleWord && textnorm.WordCount(disp) <= 1 {
			counts.SkippedSingleWord++
			blocks = append(blocks, b)
			continue
		}

		value := src.value
		if len(textnorm.ExtractPlaceholders(src.msgID)) == len(textnorm.ExtractPlaceholders(e.MsgID)) {
			value = textnorm.AdaptPlaceholders(value, src.msgID, e.MsgID)
		}

		nb := podoc.ReplaceValue(b, value, fillSlot(b))
		nb = podoc.EnsureReviewFlag(nb)
		blocks = append(blocks, nb)
		counts.Filled++
	}

	return target.WithBlocks(blocks), divergences, counts
}

// fillSlot picks the declaration Fill writes: plural form 0 when the
// block declares msgstr[0], the simple msgstr otherwise.
func fillSlot(b podoc.Block) int {
	for _, ln := range b {
		if strings.HasPrefix(strings.TrimLeft(ln, " \t"), "msgstr[0]") {
			return 0
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Lint
// ---------------------------------------------------------------------------

// LintOptions select the checks Lint runs.
type LintOptions struct {
	// Format enables the markup balance checks on msgid and msgstr.
	Format bool
	// Punctuation enables the typography checks on msgstr.
	Punctuation bool
	// Extra holds caller-supplied checks, run on msgstr after the
	// built-in batteries.
	Extra []checks.Check
}

// IssueReport lists the findings for one entry.
type IssueReport struct {
	// Display is the stripped msgid shown in reports.
	Display string
	// Value is the entry's effective translation.
	Value string
	// Issues are the findings, each prefixed with the field it hit.
	Issues []string
}

// Lint runs the enabled check batteries over every active entry.
// Format checks cover msgid and msgstr alike; punctuation checks and
// Extra cover msgstr only. Entries without findings are omitted and
// the report keeps the catalog's order.
func Lint(entries []*po.Entry, opts LintOptions) []IssueReport {
	var out []IssueReport
	for _, e := range entries {
		if e.MsgID == "" || e.Obsolete {
			continue
		}
		value := e.Effective()

		var issues []string
		fields := []struct {
			label string
			text  string
		}{
			{"msgid", e.MsgID},
			{"msgstr", value},
		}
		for _, field := range fields {
			if field.text == "" {
				continue
			}
			if opts.Format {
				for _, c := range checks.Format {
					if msg := c(field.text); msg != "" {
						issues = append(issues, field.label+": "+msg)
					}
				}
			}
			if field.label != "msgstr" {
				continue
			}
			if opts.Punctuation {
				for _, c := range checks.Punctuation {
					if msg := c(field.text); msg != "" {
						issues = append(issues, field.label+": "+msg)
					}
				}
			}
			for _, c := range opts.Extra {
				if msg := c(field.text); msg != "" {
					issues = append(issues, field.label+": "+msg)
				}
			}
		}

		if len(issues) > 0 {
			out = append(out, IssueReport{
				Display: textnorm.StripFormatting(e.MsgID),
				Value:   value,
				Issues:  issues,
			})
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// AutoFix
// ---------------------------------------------------------------------------

// AutoFix applies the punctuation substitution chain to every
// translated value of the document. A changed entry has each affected
// declaration patched and gains the review flag; the count is entries
// changed, not substitutions made. Untouched blocks are shared with
// the input document.
func AutoFix(doc *podoc.Document) (*podoc.Document, int) {
	fixed := 0
	blocks := make([]podoc.Block, 0, len(doc.Blocks))

	for _, b := range doc.Blocks {
		e := podoc.ParseBlock(b)
		if e.MsgID == "" {
			blocks = append(blocks, b)
			continue
		}

		nb := b
		changed := false

		if e.Value.Simple != "" {
			if fx := checks.FixPunctuation(e.Value.Simple); fx != e.Value.Simple {
				nb = podoc.ReplaceValue(nb, fx, -1)
				changed = true
			}
		}

		idxs := make([]int, 0, len(e.Value.Plural))
		for i := range e.Value.Plural {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		for _, i := range idxs {
			v := e.Value.Plural[i]
			if v == "" {
				continue
			}
			if fx := checks.FixPunctuation(v); fx != v {
				nb = podoc.ReplaceValue(nb, fx, i)
				changed = true
			}
		}

		if changed {
			nb = podoc.EnsureReviewFlag(nb)
			fixed++
		}
		blocks = append(blocks, nb)
	}

	return doc.WithBlocks(blocks), fixed
}
