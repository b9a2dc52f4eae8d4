// Package pofile reads PO translation catalogs into ordered, structured
// entries following the GNU gettext format specification.
//
// Two readers share one contract: ScannerReader speaks the full PO
// grammar and reports structural errors, while BlockReader is the
// permissive fallback that salvages what it can and never rejects a
// file. Load chains the two. Writing is not implemented here; catalog
// mutation goes through podoc, which preserves every byte it does not
// touch.
package pofile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minios-linux/pokit/podoc"
)

// Entry represents a single translatable message in a PO file.
type Entry struct {
	// TranslatorComments are lines starting with "# " (translator comments).
	TranslatorComments []string
	// ExtractedComments are lines starting with "#." (extracted/automatic comments).
	ExtractedComments []string
	// References are source code locations, lines starting with "#:".
	References []string
	// Flags are format flags, lines starting with "#,".
	Flags []string
	// PreviousMsgID stores the previous msgid for fuzzy entries, lines starting with "#|".
	PreviousMsgID string

	// MsgCtxt is the message context (msgctxt).
	MsgCtxt string
	// MsgID is the untranslated string.
	MsgID string
	// MsgIDPlural is the untranslated plural string.
	MsgIDPlural string
	// MsgStr is the translated string (singular or the only form).
	MsgStr string
	// Plural maps plural form index to translated string.
	Plural map[int]string

	// Obsolete marks entries prefixed with "#~".
	Obsolete bool
}

// IsTranslated returns true if the entry has a non-empty translation.
func (e *Entry) IsTranslated() bool {
	if e.MsgID == "" {
		return false // header entry
	}
	if e.IsFuzzy() {
		return false
	}
	if e.MsgIDPlural != "" {
		for _, v := range e.Plural {
			if v == "" {
				return false
			}
		}
		return len(e.Plural) > 0
	}
	return e.MsgStr != ""
}

// IsFuzzy returns true if the entry is marked fuzzy.
func (e *Entry) IsFuzzy() bool {
	return e.HasFlag("fuzzy")
}

// HasFlag checks if a specific flag is present.
func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Effective returns the translation the entry contributes to matching:
// the simple msgstr or, when that is empty, the first plural form.
func (e *Entry) Effective() string {
	if e.MsgStr != "" {
		return e.MsgStr
	}
	return e.Plural[0]
}

// File represents a parsed PO catalog.
type File struct {
	// Header is the metadata entry (msgid "").
	Header *Entry
	// Entries are the translatable message entries, in file order. A
	// msgid declared twice occupies its first position with its last
	// value.
	Entries []*Entry
}

// NewFile creates a new empty PO file.
func NewFile() *File {
	return &File{
		Header: &Entry{
			MsgID:  "",
			MsgStr: "",
		},
		Entries: make([]*Entry, 0),
	}
}

// HeaderField returns a header field value by name.
func (f *File) HeaderField(name string) string {
	if f.Header == nil {
		return ""
	}
	for _, line := range strings.Split(f.Header.MsgStr, "\n") {
		if idx := strings.Index(line, ":"); idx > 0 {
			key := strings.TrimSpace(line[:idx])
			if strings.EqualFold(key, name) {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// Stats returns translation statistics over the active entries.
func (f *File) Stats() (total, translated, fuzzy, untranslated int) {
	for _, e := range f.Entries {
		if e.MsgID == "" || e.Obsolete {
			continue
		}
		total++
		if e.IsFuzzy() {
			fuzzy++
		} else if e.IsTranslated() {
			translated++
		} else {
			untranslated++
		}
	}
	return
}

// ObsoleteEntries returns entries carried along with the "#~" prefix.
func (f *File) ObsoleteEntries() []*Entry {
	var result []*Entry
	for _, e := range f.Entries {
		if e.Obsolete {
			result = append(result, e)
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Readers
// ---------------------------------------------------------------------------

// Reader turns a catalog stream into a File. Implementations differ in
// strictness, not in the shape of the result.
type Reader interface {
	Read(r io.Reader) (*File, error)
}

// Load reads a catalog with the scanner and falls back to the block
// reader when the scanner rejects the content.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ScannerReader{}.Read(bytes.NewReader(data))
	if err != nil {
		return BlockReader{}.Read(bytes.NewReader(data))
	}
	return f, nil
}

// entryKey is the identity under which duplicate declarations collapse.
// The EOT separator matches how gettext joins msgctxt and msgid.
func entryKey(e *Entry) string {
	if e.MsgCtxt == "" {
		return e.MsgID
	}
	return e.MsgCtxt + "\x04" + e.MsgID
}

// place appends an entry, routing the header aside and collapsing
// duplicates onto their first position.
func place(f *File, index map[string]int, e *Entry) {
	if e.MsgID == "" && !e.Obsolete {
		f.Header = e
		return
	}
	if e.Obsolete {
		f.Entries = append(f.Entries, e)
		return
	}
	if at, ok := index[entryKey(e)]; ok {
		f.Entries[at] = e
		return
	}
	index[entryKey(e)] = len(f.Entries)
	f.Entries = append(f.Entries, e)
}

// ScannerReader parses the full PO grammar line by line: comments,
// flags, contexts, plural declarations, continuations and obsolete
// entries. Structurally invalid msgstr indices are reported as errors.
type ScannerReader struct{}

// Read parses a PO catalog from a reader.
func (ScannerReader) Read(r io.Reader) (*File, error) {
	f := NewFile()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	index := make(map[string]int)
	var current *Entry
	var lastField string // tracks the last msgid/msgstr/etc. field for multiline strings
	lineNum := 0

	flush := func() {
		if current == nil {
			return
		}
		// a paragraph of bare comments declares nothing worth keeping
		if lastField != "" || current.MsgID != "" {
			place(f, index, current)
		}
		current = nil
		lastField = ""
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Empty line separates entries
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			current = &Entry{
				Plural: make(map[int]string),
			}
		}

		// Handle obsolete entries
		if strings.HasPrefix(line, "#~ ") {
			current.Obsolete = true
			line = line[3:]
		}

		// Comment lines
		if strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#~") {
			if strings.HasPrefix(line, "#:") {
				// Reference
				refs := strings.TrimSpace(line[2:])
				current.References = append(current.References, refs)
			} else if strings.HasPrefix(line, "#,") {
				// Flags
				flagStr := strings.TrimSpace(line[2:])
				for _, flag := range strings.Split(flagStr, ",") {
					flag = strings.TrimSpace(flag)
					if flag != "" {
						current.Flags = append(current.Flags, flag)
					}
				}
			} else if strings.HasPrefix(line, "#.") {
				// Extracted comment
				current.ExtractedComments = append(current.ExtractedComments, strings.TrimSpace(line[2:]))
			} else if strings.HasPrefix(line, "#|") {
				// Previous msgid
				prev := strings.TrimSpace(line[2:])
				if strings.HasPrefix(prev, "msgid ") {
					current.PreviousMsgID = unquote(strings.TrimPrefix(prev, "msgid "))
				}
			} else {
				// Translator comment
				comment := line[1:]
				if strings.HasPrefix(comment, " ") {
					comment = comment[1:]
				}
				current.TranslatorComments = append(current.TranslatorComments, comment)
			}
			continue
		}

		// msgctxt
		if strings.HasPrefix(line, "msgctxt ") {
			current.MsgCtxt = unquote(strings.TrimPrefix(line, "msgctxt "))
			lastField = "msgctxt"
			continue
		}

		// msgid_plural
		if strings.HasPrefix(line, "msgid_plural ") {
			current.MsgIDPlural = unquote(strings.TrimPrefix(line, "msgid_plural "))
			lastField = "msgid_plural"
			continue
		}

		// msgid
		if strings.HasPrefix(line, "msgid ") {
			current.MsgID = unquote(strings.TrimPrefix(line, "msgid "))
			lastField = "msgid"
			continue
		}

		// msgstr[N]
		if strings.HasPrefix(line, "msgstr[") {
			var idx int
			n, err := fmt.Sscanf(line, "msgstr[%d]", &idx)
			if err != nil || n != 1 {
				return nil, fmt.Errorf("line %d: invalid msgstr index: %s", lineNum, line)
			}
			// Find the quoted string after "] "
			bracketEnd := strings.Index(line, "] ")
			if bracketEnd < 0 {
				return nil, fmt.Errorf("line %d: invalid msgstr format: %s", lineNum, line)
			}
			current.Plural[idx] = unquote(line[bracketEnd+2:])
			lastField = fmt.Sprintf("msgstr[%d]", idx)
			continue
		}

		// msgstr
		if strings.HasPrefix(line, "msgstr ") {
			current.MsgStr = unquote(strings.TrimPrefix(line, "msgstr "))
			lastField = "msgstr"
			continue
		}

		// Continuation line (starts with ")
		if strings.HasPrefix(line, "\"") {
			val := unquote(line)
			switch {
			case lastField == "msgctxt":
				current.MsgCtxt += val
			case lastField == "msgid":
				current.MsgID += val
			case lastField == "msgid_plural":
				current.MsgIDPlural += val
			case lastField == "msgstr":
				current.MsgStr += val
			case strings.HasPrefix(lastField, "msgstr["):
				var idx int
				fmt.Sscanf(lastField, "msgstr[%d]", &idx)
				current.Plural[idx] += val
			}
			continue
		}
	}

	// Flush last entry
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PO file: %w", err)
	}

	return f, nil
}

// BlockReader recovers entries from content the scanner rejects. It
// splits the document into blocks and keeps whatever each block's
// best-effort parse yields; malformed blocks degrade to nothing instead
// of failing the file. Only identities and values are salvaged: a
// block's trailing comment lines belong to the next entry, so flags
// cannot be attributed reliably here.
type BlockReader struct{}

// Read parses a PO catalog block by block.
func (BlockReader) Read(r io.Reader) (*File, error) {
	doc, err := podoc.Parse(r)
	if err != nil {
		return nil, err
	}

	f := NewFile()
	index := make(map[string]int)
	for _, b := range doc.Blocks {
		pe := podoc.ParseBlock(b)
		if pe.MsgID == "" && pe.Value.IsEmpty() {
			continue
		}
		e := &Entry{
			MsgID:    pe.MsgID,
			Obsolete: pe.Obsolete,
		}
		switch pe.Value.Kind {
		case podoc.ValueSimple:
			e.MsgStr = pe.Value.Simple
		case podoc.ValuePlural:
			e.Plural = pe.Value.Plural
		}
		place(f, index, e)
	}
	return f, nil
}

// unquote removes PO-style quoting from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]

	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				result.WriteByte('\n')
				i++
			case 't':
				result.WriteByte('\t')
				i++
			case '\\':
				result.WriteByte('\\')
				i++
			case '"':
				result.WriteByte('"')
				i++
			default:
				result.WriteByte(s[i])
			}
		} else {
			result.WriteByte(s[i])
		}
	}
	return result.String()
}

// LangNameNative returns the native name of a language.
func LangNameNative(lang string) string {
	names := map[string]string{
		"ar":    "العربية",
		"bg":    "Български",
		"cs":    "Čeština",
		"da":    "Dansk",
		"de":    "Deutsch",
		"el":    "Ελληνικά",
		"en":    "English",
		"es":    "Español",
		"fi":    "Suomi",
		"fr":    "Français",
		"he":    "עברית",
		"hi":    "हिन्दी",
		"hr":    "Hrvatski",
		"hu":    "Magyar",
		"id":    "Bahasa Indonesia",
		"it":    "Italiano",
		"ja":    "日本語",
		"ko":    "한국어",
		"lt":    "Lietuvių",
		"lv":    "Latviešu",
		"ms":    "Bahasa Melayu",
		"nl":    "Nederlands",
		"no":    "Norsk",
		"nb":    "Norsk bokmål",
		"nn":    "Norsk nynorsk",
		"pl":    "Polski",
		"pt":    "Português",
		"pt_BR": "Português (Brasil)",
		"ro":    "Română",
		"ru":    "Русский",
		"sk":    "Slovenčina",
		"sr":    "Српски",
		"sv":    "Svenska",
		"th":    "ไทย",
		"tr":    "Türkçe",
		"uk":    "Українська",
		"vi":    "Tiếng Việt",
		"zh":    "中文",
	}
	if name, ok := names[lang]; ok {
		return name
	}
	return lang
}
