// Package textnorm normalizes catalog source strings for matching and
// reporting.
//
// Catalog exports from different platforms dress the same sentence up
// differently: CDATA wrappers, HTML entities, markup tags, markdown
// emphasis, exotic whitespace, differently shaped printf placeholders.
// The functions here run fixed, ordered pipelines that peel those layers
// off one stage at a time. The stage order is load-bearing: entities
// decode before tag stripping (an encoded tag would survive otherwise)
// and placeholders normalize before trailing punctuation handling (a
// placeholder next to a final period would be mis-trimmed).
package textnorm

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// cdataSection captures the inner text of one CDATA wrapper.
	cdataSection = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	// markupToken matches anything StripFormatting erases: tags, stray
	// CDATA delimiters and markdown emphasis markers.
	markupToken = regexp.MustCompile("<[^>]+>|<!\\[CDATA\\[|\\]\\]>|\\*\\*|__|\\*|_|`|~~")
	// htmlTag matches tag-shaped runs for visible-text extraction.
	htmlTag = regexp.MustCompile(`<[^>]+>`)
	// wordRun matches one word: letter/digit/underscore runs, with
	// internal hyphens kept as part of the word.
	wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+(?:-[\p{L}\p{N}_]+)*`)
)

// collapseWS reduces every whitespace run to a single space and trims.
func collapseWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripFormatting reduces a source string to its bare text: CDATA
// wrappers unwrapped, entities decoded, tags and emphasis markers
// removed, Unicode compatibility-composed, whitespace collapsed. The
// result is the DisplayForm used in reports.
func StripFormatting(s string) string {
	if s == "" {
		return ""
	}
	s = cdataSection.ReplaceAllString(s, "$1")
	s = html.UnescapeString(s)
	s = markupToken.ReplaceAllString(s, "")
	s = norm.NFKC.String(s)
	return collapseWS(s)
}

// VisibleText extracts what a reader of the rendered string would see:
// the concatenated CDATA inner texts when any exist, otherwise the whole
// string, with tags blanked out, entities decoded and whitespace
// normalized. Lint checks for quote and ellipsis style run on this so
// markup noise cannot trigger them.
func VisibleText(s string) string {
	parts := cdataSection.FindAllStringSubmatch(s, -1)
	txt := s
	if len(parts) > 0 {
		inner := make([]string, 0, len(parts))
		for _, m := range parts {
			inner = append(inner, m[1])
		}
		txt = strings.Join(inner, " ")
	}
	txt = htmlTag.ReplaceAllString(txt, " ")
	txt = html.UnescapeString(txt)
	txt = norm.NFKC.String(txt)
	return collapseWS(txt)
}

// WordSet returns the lowercased words of a value with markup and
// placeholders out of the way. Word-overlap similarity in the divergence
// check runs on these sets.
func WordSet(s string) map[string]bool {
	t := StripFormatting(s)
	t = RemovePlaceholders(t)
	set := make(map[string]bool)
	for _, w := range wordRun.FindAllString(t, -1) {
		set[strings.ToLower(w)] = true
	}
	return set
}

// WordCount counts the words of an already normalized DisplayForm,
// placeholders excluded. The fill algorithm refuses to auto-fill
// single-word strings by default because they carry too little context.
func WordCount(display string) int {
	return len(wordRun.FindAllString(placeholderRE.ReplaceAllString(display, " "), -1))
}
