package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// QuestionMarker tags canonical keys of interrogative strings, so "Save"
// and "Save?" never collide.
const QuestionMarker = "{Q}"

// trailingPunct matches non-interrogative sentence-final punctuation.
var trailingPunct = regexp.MustCompile(`[.!…\s]+$`)

// Canonicalize derives the matching key and the human-readable
// DisplayForm of a msgid. The key is what aligns entries across catalog
// exports that dress the same string differently:
//
//	markup stripped     →  DisplayForm
//	placeholders        →  {PH} (identity erased, count and order kept)
//	trailing . ! …      →  dropped
//	trailing ?          →  dropped, {Q} appended
//	case                →  lowered
//
// The function is pure and deterministic; feeding a DisplayForm back in
// yields the same key as the original msgid.
func Canonicalize(msgid string) (key, display string) {
	display = StripFormatting(msgid)
	base, question := TrimSentenceEnd(NormalizePlaceholders(display))
	key = strings.ToLower(base)
	if question {
		key += QuestionMarker
	}
	return collapseWS(key), display
}

// TrimSentenceEnd strips formatting and sentence-final punctuation and
// reports whether the sentence asked a question. Interrogatives shed
// only the ? itself so the question bit survives the trim; everything
// else sheds trailing periods, exclamation marks, ellipses and
// whitespace.
func TrimSentenceEnd(s string) (base string, question bool) {
	clean := StripFormatting(s)
	if clean == "" {
		return "", false
	}
	if strings.HasSuffix(clean, "?") {
		return strings.TrimRightFunc(clean[:len(clean)-1], unicode.IsSpace), true
	}
	return trailingPunct.ReplaceAllString(clean, ""), false
}
