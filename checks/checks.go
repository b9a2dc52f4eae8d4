// Package checks implements the per-entry text checks behind the lint
// command and the punctuation substitutions behind the fix command.
//
// Format checks (CDATABalance, MarkdownBalance, HTMLTagBalance) look for
// markup damaged in translation and apply to source and translated text
// alike. Punctuation checks (EllipsisUsage, QuotesUsage) enforce the
// Hungarian typography conventions of the MiniOS catalogs and only make
// sense on translated text.
package checks

import (
	"regexp"
	"strings"

	"github.com/minios-linux/pokit/textnorm"
)

// A Check inspects one text and returns a short problem description, or
// the empty string when the text passes.
type Check func(s string) string

// Format holds the checks applied to source and translated text alike.
var Format = []Check{CDATABalance, MarkdownBalance, HTMLTagBalance}

// Punctuation holds the checks applied to translated text only.
var Punctuation = []Check{EllipsisUsage, QuotesUsage}

// ---------------------------------------------------------------------------
// Format checks
// ---------------------------------------------------------------------------

var (
	htmlTag     = regexp.MustCompile(`<[^>]+>`)
	htmlTagName = regexp.MustCompile(`<\s*(/)?\s*([a-zA-Z][a-zA-Z0-9:-]*)[^>]*>`)
)

// voidTags never take a closing tag and are skipped by HTMLTagBalance.
var voidTags = map[string]bool{
	"br": true, "img": true, "hr": true, "input": true, "meta": true, "link": true,
}

// pairMarkers are counted pairwise by MarkdownBalance. Double markers
// come first so a balanced ** run contributes an even number of
// asterisks to the lone * count afterwards.
var pairMarkers = []string{"`", "**", "__", "~~"}

// CDATABalance reports CDATA wrappers whose open and close markers do
// not pair up.
func CDATABalance(s string) string {
	if s == "" {
		return ""
	}
	if strings.Count(s, "<![CDATA[") != strings.Count(s, "]]>") {
		return "unbalanced CDATA section"
	}
	return ""
}

// MarkdownBalance reports markdown emphasis markers without a partner.
// Strings carrying CDATA or HTML tags are skipped entirely: markup text
// reuses the marker characters with other meanings.
func MarkdownBalance(s string) string {
	if s == "" || strings.Contains(s, "<![CDATA[") || htmlTag.MatchString(s) {
		return ""
	}
	v := textnorm.VisibleText(s)
	for _, m := range pairMarkers {
		if strings.Count(v, m)%2 != 0 {
			return "unbalanced markdown marker " + m
		}
	}
	if strings.Count(v, "*")%2 != 0 {
		return "unbalanced markdown marker *"
	}
	return ""
}

// HTMLTagBalance reports tag names opened and closed an unequal number
// of times, in order of first appearance. Void tags are exempt, and so
// is any string carrying CDATA, whose content legitimately embeds
// unpaired markup.
func HTMLTagBalance(s string) string {
	if s == "" || strings.Contains(s, "<![CDATA[") {
		return ""
	}
	depth := make(map[string]int)
	var seen []string
	for _, m := range htmlTagName.FindAllStringSubmatch(s, -1) {
		name := strings.ToLower(m[2])
		if voidTags[name] {
			continue
		}
		if _, ok := depth[name]; !ok {
			seen = append(seen, name)
		}
		if m[1] == "/" {
			depth[name]--
		} else {
			depth[name]++
		}
	}
	var bad []string
	for _, name := range seen {
		if depth[name] != 0 {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		return "unbalanced HTML tags: " + strings.Join(bad, ", ")
	}
	return ""
}

// ---------------------------------------------------------------------------
// Punctuation checks
// ---------------------------------------------------------------------------

// EllipsisUsage reports ASCII three-dot ellipses in text that nowhere
// uses the typographic …. The ASCII probe runs on the visible text and
// the typographic probe on the raw string: NFKC folds … into three
// dots, so the visible text alone cannot tell the two apart.
func EllipsisUsage(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(textnorm.VisibleText(s), "...") && !strings.Contains(s, "…") {
		return "ASCII ellipsis (...)"
	}
	return ""
}

// QuotesUsage reports straight quotation marks in text that never uses
// the typographic „ ” pair.
func QuotesUsage(s string) string {
	if s == "" {
		return ""
	}
	v := textnorm.VisibleText(s)
	if (strings.Contains(v, `"`) || strings.Contains(v, "'")) &&
		!strings.Contains(v, "„") && !strings.Contains(v, "”") {
		return "straight quotation marks"
	}
	return ""
}

// ---------------------------------------------------------------------------
// Punctuation fixes
// ---------------------------------------------------------------------------

var (
	// '' used as an opening quote: after whitespace, start of text or [.
	aposOpen = regexp.MustCompile(`(\s|^|\[)''`)
	// '' used as a closing quote: before whitespace, punctuation, ] or end.
	aposClose = regexp.MustCompile(`''(\s|[,.]|\]|$)`)
	// dotRun matches an ASCII ellipsis and any longer dot run.
	dotRun = regexp.MustCompile(`\.{3,}`)
	// longDash matches en and em dashes.
	longDash = regexp.MustCompile(`[–—]`)
)

// FixPunctuation rewrites a translated value into Hungarian typography:
// '' pairs and balanced straight double quotes become „ ”, ASCII
// ellipses become …, en and em dashes become plain hyphens. Text the
// chain does not recognize passes through unchanged.
func FixPunctuation(s string) string {
	if s == "" {
		return s
	}
	fixed := aposOpen.ReplaceAllString(s, "${1}„")
	fixed = aposClose.ReplaceAllString(fixed, "”${1}")
	if n := strings.Count(fixed, `"`); n > 0 && n%2 == 0 {
		var b strings.Builder
		open := true
		for _, r := range fixed {
			if r != '"' {
				b.WriteRune(r)
				continue
			}
			if open {
				b.WriteRune('„')
			} else {
				b.WriteRune('”')
			}
			open = !open
		}
		fixed = b.String()
	}
	fixed = dotRun.ReplaceAllStringFunc(fixed, func(m string) string {
		// only the final three dots of a longer run collapse
		return strings.Repeat(".", len(m)-3) + "…"
	})
	return longDash.ReplaceAllString(fixed, "-")
}
