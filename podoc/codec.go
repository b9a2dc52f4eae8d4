package podoc

import (
	"strconv"
	"strings"
)

// EncodeValue renders a translation value as a single quoted PO fragment.
// Backslashes are escaped before quotes (the reverse order would
// double-escape), then CRLF and bare CR collapse to LF before newline
// and tab encoding.
func EncodeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}

// DecodeFragment decodes one quoted fragment line, with any declaration
// prefix already removed. Fragments not enclosed in double quotes decode
// to the empty string. Escapes beyond the PO set are resolved through
// the Go string grammar when possible; a fragment that grammar rejects
// falls back to a literal pass over the four known sequences, writing
// unknown escapes through verbatim. Never returns an error.
func DecodeFragment(line string) string {
	s := strings.TrimSpace(line)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ""
	}
	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}
	if dec, err := strconv.Unquote(`"` + inner + `"`); err == nil {
		return dec
	}
	return unescape(inner)
}

// unescape is the fail-open fallback decoder: it resolves \\ \" \n \t
// and copies everything else untouched.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
			case 't':
				b.WriteByte('\t')
				i++
			case '\\':
				b.WriteByte('\\')
				i++
			case '"':
				b.WriteByte('"')
				i++
			default:
				b.WriteByte(s[i])
			}
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
