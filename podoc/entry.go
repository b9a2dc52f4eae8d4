package podoc

import (
	"regexp"
	"strconv"
	"strings"
)

// ValueKind tells which translated-value shape an entry carries.
type ValueKind int

const (
	// ValueEmpty means the block declares no msgstr at all.
	ValueEmpty ValueKind = iota
	// ValueSimple means a single msgstr declaration.
	ValueSimple
	// ValuePlural means indexed msgstr[N] declarations.
	ValuePlural
)

// EntryValue is the translated payload of an entry: nothing, a single
// value, or indexed plural variants.
type EntryValue struct {
	Kind   ValueKind
	Simple string
	Plural map[int]string
}

// IsEmpty reports whether every carried form is blank.
func (v EntryValue) IsEmpty() bool {
	if strings.TrimSpace(v.Simple) != "" {
		return false
	}
	for _, s := range v.Plural {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// Effective returns the simple value or, when that is empty, plural
// variant 0.
func (v EntryValue) Effective() string {
	if v.Simple != "" {
		return v.Simple
	}
	return v.Plural[0]
}

// ParsedEntry is the structured view of one Block. It is derived data:
// re-parsing after a patch is always safe and cheap, and the entry never
// owns its block.
type ParsedEntry struct {
	// MsgID is the accumulated source string.
	MsgID string
	// Value is the translated payload.
	Value EntryValue
	// Flags collects the comma-separated items of "#," lines.
	Flags []string
	// Obsolete marks line runs whose declarations are "#~" commented out.
	Obsolete bool
}

// HasFlag reports whether a flag is present.
func (e *ParsedEntry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

var pluralDecl = regexp.MustCompile(`^msgstr\[(\d+)\]\s*(.*)$`)

// ParseBlock extracts the structured fields from one block with a small
// state machine. Comment, flag, msgctxt and msgid_plural lines reset the
// accumulation state without discarding already collected fields; they
// stay untouched in the block for write-back. Each quoted fragment is
// decoded on its own line before concatenation, because every physical
// line is independently quoted.
func ParseBlock(b Block) ParsedEntry {
	const (
		stNone = iota
		stMsgID
		stMsgStr
		stPlural
	)

	e := ParsedEntry{Value: EntryValue{Plural: make(map[int]string)}}
	state := stNone
	plural := -1
	sawDecl := false
	sawStr := false

	for _, raw := range b {
		ln := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(ln, "msgid "):
			e.MsgID = DecodeFragment(ln[len("msgid "):])
			state = stMsgID
			sawDecl = true

		case strings.HasPrefix(ln, "msgstr["):
			m := pluralDecl.FindStringSubmatch(ln)
			if m == nil {
				state = stNone
				continue
			}
			idx, _ := strconv.Atoi(m[1])
			e.Value.Plural[idx] = DecodeFragment(m[2])
			state = stPlural
			plural = idx
			sawDecl = true

		case strings.HasPrefix(ln, "msgstr "):
			e.Value.Simple = DecodeFragment(ln[len("msgstr "):])
			state = stMsgStr
			sawDecl = true
			sawStr = true

		case strings.HasPrefix(ln, `"`):
			switch state {
			case stMsgID:
				e.MsgID += DecodeFragment(ln)
			case stMsgStr:
				e.Value.Simple += DecodeFragment(ln)
			case stPlural:
				e.Value.Plural[plural] += DecodeFragment(ln)
			}

		case strings.HasPrefix(ln, "#,"):
			for _, f := range strings.Split(ln[2:], ",") {
				if f = strings.TrimSpace(f); f != "" {
					e.Flags = append(e.Flags, f)
				}
			}
			state = stNone

		case strings.HasPrefix(ln, "#~"):
			if !sawDecl {
				e.Obsolete = true
			}
			state = stNone

		default:
			state = stNone
		}
	}

	switch {
	case len(e.Value.Plural) > 0:
		e.Value.Kind = ValuePlural
	case sawStr:
		e.Value.Kind = ValueSimple
	default:
		e.Value.Kind = ValueEmpty
	}
	if len(e.Value.Plural) == 0 {
		e.Value.Plural = nil
	}
	return e
}
