package podoc

import (
	"fmt"
	"strings"
)

// eolOf returns the terminator of a raw line, defaulting to "\n" for a
// final line that has none.
func eolOf(raw string) string {
	if strings.HasSuffix(raw, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// indentOf returns the leading whitespace of a raw line.
func indentOf(raw string) string {
	return raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
}

// ReplaceValue returns a copy of the block with the msgstr declaration
// (pluralIndex < 0) or the msgstr[pluralIndex] declaration rewritten to
// carry value as a single encoded fragment. The declaration's quoted
// continuation lines are dropped; every other line is copied unchanged,
// keeping the original indentation and line terminator of the rewritten
// line. A missing declaration is inserted right after the msgid
// declaration and its continuations, or appended when the block has no
// msgid line at all. Never fails.
func ReplaceValue(b Block, value string, pluralIndex int) Block {
	prefix := "msgstr"
	if pluralIndex >= 0 {
		prefix = fmt.Sprintf("msgstr[%d]", pluralIndex)
	}
	matches := func(ls string) bool {
		return ls == prefix || strings.HasPrefix(ls, prefix+" ")
	}

	out := make(Block, 0, len(b))
	replaced := false
	for i := 0; i < len(b); i++ {
		raw := b[i]
		if matches(strings.TrimSpace(raw)) {
			out = append(out, indentOf(raw)+prefix+" "+EncodeValue(value)+eolOf(raw))
			for i+1 < len(b) && strings.HasPrefix(strings.TrimSpace(b[i+1]), `"`) {
				i++
			}
			replaced = true
			continue
		}
		out = append(out, raw)
	}
	if replaced {
		return out
	}

	// No declaration to rewrite: insert one after the msgid run.
	at := len(b)
	indent, eol := "", "\n"
	for i, raw := range b {
		if IsBoundary(raw) {
			indent = indentOf(raw)
			eol = eolOf(raw)
			at = i + 1
			for at < len(b) && strings.HasPrefix(strings.TrimSpace(b[at]), `"`) {
				at++
			}
			break
		}
	}

	ins := make(Block, 0, len(b)+1)
	ins = append(ins, b[:at]...)
	if at > 0 && !strings.HasSuffix(ins[at-1], "\n") {
		ins[at-1] += eol
	}
	ins = append(ins, indent+prefix+" "+EncodeValue(value)+eol)
	ins = append(ins, b[at:]...)
	return ins
}

// EnsureReviewFlag returns the block with the fuzzy flag present in its
// leading comment run. A block already carrying the flag comes back
// unchanged, so the operation is idempotent. Without any flags line, a
// new "#, fuzzy" line lands before the first non-comment line.
func EnsureReviewFlag(b Block) Block {
	firstCode := len(b)
	flagsAt := -1
	for i, raw := range b {
		ls := strings.TrimSpace(raw)
		if !strings.HasPrefix(ls, "#") {
			firstCode = i
			break
		}
		if strings.HasPrefix(ls, "#,") {
			if flagsAt < 0 {
				flagsAt = i
			}
			for _, f := range strings.Split(ls[2:], ",") {
				if strings.TrimSpace(f) == "fuzzy" {
					return b
				}
			}
		}
	}

	if flagsAt >= 0 {
		raw := b[flagsAt]
		line := indentOf(raw) + "#, fuzzy"
		if rest := strings.TrimSpace(strings.TrimSpace(raw)[2:]); rest != "" {
			line += ", " + rest
		}
		out := make(Block, len(b))
		copy(out, b)
		out[flagsAt] = line + eolOf(raw)
		return out
	}

	ref := ""
	if firstCode < len(b) {
		ref = b[firstCode]
	} else if len(b) > 0 {
		ref = b[len(b)-1]
	}
	out := make(Block, 0, len(b)+1)
	out = append(out, b[:firstCode]...)
	out = append(out, indentOf(ref)+"#, fuzzy"+eolOf(ref))
	out = append(out, b[firstCode:]...)
	return out
}
