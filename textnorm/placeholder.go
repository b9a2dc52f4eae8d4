package textnorm

import (
	"regexp"
	"strings"
)

// PlaceholderToken replaces every placeholder during canonicalization,
// erasing its identity while keeping count and position.
const PlaceholderToken = "{PH}"

// placeholderRE matches the registered placeholder shapes. Alternation
// order goes from most to least specific: numbered-typed printf forms,
// the long-integer form, then single-character typed forms.
var placeholderRE = regexp.MustCompile(`%\d+\$[sd@]|%lld|%[sd@u%]`)

// ExtractPlaceholders returns every placeholder of s in order.
func ExtractPlaceholders(s string) []string {
	return placeholderRE.FindAllString(s, -1)
}

// RemovePlaceholders blanks placeholders out and re-collapses the
// whitespace their removal leaves behind.
func RemovePlaceholders(s string) string {
	return collapseWS(placeholderRE.ReplaceAllString(s, " "))
}

// NormalizePlaceholders swaps every placeholder for PlaceholderToken.
func NormalizePlaceholders(s string) string {
	return placeholderRE.ReplaceAllString(s, PlaceholderToken)
}

// AdaptPlaceholders rewrites a borrowed translation to the placeholder
// dialect of its new home. When the source and target msgids read the
// same with placeholders stripped, and the translation carries exactly
// as many placeholders as the target msgid, each placeholder of the
// translation is swapped in order for the target's. Any mismatch returns
// the translation unchanged.
func AdaptPlaceholders(value, sourceID, targetID string) string {
	srcClean := StripFormatting(RemovePlaceholders(sourceID))
	tgtClean := StripFormatting(RemovePlaceholders(targetID))
	if srcClean != tgtClean {
		return value
	}

	spots := placeholderRE.FindAllStringIndex(value, -1)
	targetPHs := ExtractPlaceholders(targetID)
	if len(spots) == 0 || len(targetPHs) == 0 || len(spots) != len(targetPHs) {
		return value
	}

	// splice by match position; in-place token replacement would hit
	// tokens already substituted in when the dialects swap shapes
	var b strings.Builder
	last := 0
	for i, sp := range spots {
		b.WriteString(value[last:sp[0]])
		b.WriteString(targetPHs[i])
		last = sp[1]
	}
	b.WriteString(value[last:])
	return b.String()
}
