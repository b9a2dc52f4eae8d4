package podoc

import (
	"reflect"
	"testing"
)

func TestParseBlockSimpleEntry(t *testing.T) {
	b := Block{
		"#: app/main.c:12\n",
		"#, c-format, fuzzy\n",
		"msgid \"Hello \"\n",
		"\"world\"\n",
		"msgstr \"Szia \"\n",
		"\"világ\"\n",
	}

	e := ParseBlock(b)
	if e.MsgID != "Hello world" {
		t.Fatalf("MsgID = %q, want %q", e.MsgID, "Hello world")
	}
	if e.Value.Kind != ValueSimple {
		t.Fatalf("Kind = %d, want ValueSimple", e.Value.Kind)
	}
	if e.Value.Simple != "Szia világ" {
		t.Fatalf("Simple = %q, want %q", e.Value.Simple, "Szia világ")
	}
	if !reflect.DeepEqual(e.Flags, []string{"c-format", "fuzzy"}) {
		t.Fatalf("Flags = %v", e.Flags)
	}
	if !e.HasFlag("fuzzy") || e.HasFlag("python-format") {
		t.Fatalf("HasFlag answers wrong: %v", e.Flags)
	}
}

func TestParseBlockPluralEntry(t *testing.T) {
	b := Block{
		"msgid \"%d file\"\n",
		"msgid_plural \"%d files\"\n",
		"msgstr[0] \"%d fájl\"\n",
		"msgstr[1] \"\"\n",
		"\"%d fájl\"\n",
	}

	e := ParseBlock(b)
	if e.MsgID != "%d file" {
		t.Fatalf("MsgID = %q", e.MsgID)
	}
	if e.Value.Kind != ValuePlural {
		t.Fatalf("Kind = %d, want ValuePlural", e.Value.Kind)
	}
	want := map[int]string{0: "%d fájl", 1: "%d fájl"}
	if !reflect.DeepEqual(e.Value.Plural, want) {
		t.Fatalf("Plural = %v, want %v", e.Value.Plural, want)
	}
	if e.Value.Effective() != "%d fájl" {
		t.Fatalf("Effective = %q", e.Value.Effective())
	}
}

func TestParseBlockStateResetsOnInterveningLines(t *testing.T) {
	// A comment between a declaration and a quoted line orphans the
	// continuation: the state machine drops back to none and the quoted
	// line is ignored rather than appended to the wrong field.
	b := Block{
		"msgid \"kept\"\n",
		"# interloper\n",
		"\"dropped\"\n",
		"msgstr \"value\"\n",
	}

	e := ParseBlock(b)
	if e.MsgID != "kept" {
		t.Fatalf("MsgID = %q, want %q", e.MsgID, "kept")
	}
	if e.Value.Simple != "value" {
		t.Fatalf("Simple = %q, want %q", e.Value.Simple, "value")
	}
}

func TestParseBlockHeaderAndMalformed(t *testing.T) {
	header := ParseBlock(Block{
		"msgid \"\"\n",
		"msgstr \"\"\n",
		"\"Language: hu\\n\"\n",
	})
	if header.MsgID != "" {
		t.Fatalf("header MsgID = %q, want empty", header.MsgID)
	}
	if header.Value.Simple != "Language: hu\n" {
		t.Fatalf("header Simple = %q", header.Value.Simple)
	}

	junk := ParseBlock(Block{"this line declares nothing\n"})
	if junk.MsgID != "" || junk.Value.Kind != ValueEmpty {
		t.Fatalf("junk block parsed to %+v", junk)
	}

	obsolete := ParseBlock(Block{
		"#~ msgid \"gone\"\n",
		"#~ msgstr \"volt\"\n",
	})
	if !obsolete.Obsolete {
		t.Fatal("obsolete run not detected")
	}
}

func TestEntryValueEmptiness(t *testing.T) {
	cases := []struct {
		name  string
		value EntryValue
		empty bool
	}{
		{name: "no declarations", value: EntryValue{Kind: ValueEmpty}, empty: true},
		{name: "blank simple", value: EntryValue{Kind: ValueSimple, Simple: "  "}, empty: true},
		{name: "filled simple", value: EntryValue{Kind: ValueSimple, Simple: "x"}, empty: false},
		{name: "blank plurals", value: EntryValue{Kind: ValuePlural, Plural: map[int]string{0: "", 1: " "}}, empty: true},
		{name: "one filled plural", value: EntryValue{Kind: ValuePlural, Plural: map[int]string{0: "", 1: "x"}}, empty: false},
	}
	for _, tc := range cases {
		if got := tc.value.IsEmpty(); got != tc.empty {
			t.Fatalf("%s: IsEmpty = %v, want %v", tc.name, got, tc.empty)
		}
	}
}
