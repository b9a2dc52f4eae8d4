package checks

import "testing"

// ---------------------------------------------------------------------------
// Format check tests
// ---------------------------------------------------------------------------

func TestCDATABalance(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"balanced", "<![CDATA[Hello]]>", ""},
		{"two balanced sections", "<![CDATA[a]]> és <![CDATA[b]]>", ""},
		{"missing close", "<![CDATA[Hello", "unbalanced CDATA section"},
		{"stray close", "oops]]>", "unbalanced CDATA section"},
		{"plain text", "Hello", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CDATABalance(tt.in); got != tt.want {
				t.Fatalf("CDATABalance(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarkdownBalance(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"balanced bold", "**félkövér**", ""},
		{"open bold", "**félkövér", "unbalanced markdown marker **"},
		{"balanced code", "`kód`", ""},
		{"open code", "`kód", "unbalanced markdown marker `"},
		{"lone asterisk", "a * b", "unbalanced markdown marker *"},
		{"even asterisks pass", "2 * 3 * 4", ""},
		{"emphasis mix", "*dőlt* és **félkövér**", ""},
		{"dunder pair", "__init__", ""},
		{"open strike", "~~áthúzott", "unbalanced markdown marker ~~"},
		{"skipped inside tags", "<b>*</b>", ""},
		{"skipped inside cdata", "<![CDATA[* felsorolás]]>", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarkdownBalance(tt.in); got != tt.want {
				t.Fatalf("MarkdownBalance(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTMLTagBalance(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"balanced", "<b>félkövér</b>", ""},
		{"unclosed", "<b>félkövér", "unbalanced HTML tags: b"},
		{"nested unclosed outer", "<b><i>x</i>", "unbalanced HTML tags: b"},
		{"close only", "kóbor</span>", "unbalanced HTML tags: span"},
		{"first seen order", "<b><i>", "unbalanced HTML tags: b, i"},
		{"void br skipped", "sor<br>törés", ""},
		{"void img skipped", `<img src="ikon.png">`, ""},
		{"case folded", "<B>x</b>", ""},
		{"attributes ignored", `<a href="url">link</a>`, ""},
		{"cdata exempt", "<![CDATA[<b>]]>", ""},
		{"spaced closing", "<b>x</ b>", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLTagBalance(tt.in); got != tt.want {
				t.Fatalf("HTMLTagBalance(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Punctuation check tests
// ---------------------------------------------------------------------------

func TestEllipsisUsage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii dots", "Betöltés...", "ASCII ellipsis (...)"},
		{"typographic", "Betöltés…", ""},
		{"mixed keeps quiet", "Várj... vagy …", ""},
		{"no dots", "Kész.", ""},
		{"entity encoded is still ascii on screen", "Betöltés&hellip;", "ASCII ellipsis (...)"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EllipsisUsage(tt.in); got != tt.want {
				t.Fatalf("EllipsisUsage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// The typographic ellipsis NFKC-folds into three ASCII dots, so the raw
// string is the only place the two can be told apart.
func TestEllipsisUsage_TypographicSurvivesNormalization(t *testing.T) {
	if got := EllipsisUsage("Mentés…"); got != "" {
		t.Fatalf("EllipsisUsage(%q) = %q, want no finding", "Mentés…", got)
	}
}

func TestQuotesUsage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"straight double", `azt mondta: "igen"`, "straight quotation marks"},
		{"straight single", "don't", "straight quotation marks"},
		{"typographic", "azt mondta: „igen”", ""},
		{"mixed tolerated", `"x" és „y”`, ""},
		{"quotes only in attribute", `<a href="url">link</a>`, ""},
		{"no quotes", "sima szöveg", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuotesUsage(tt.in); got != tt.want {
				t.Fatalf("QuotesUsage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Punctuation fix tests
// ---------------------------------------------------------------------------

func TestFixPunctuation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"apostrophe pair", "az ''alma'' piros", "az „alma” piros"},
		{"pair at string start", "''Kezdet'' és vég", "„Kezdet” és vég"},
		{"pair in brackets", "[''gomb'']", "[„gomb”]"},
		{"pair before comma", "''igen'', mondta", "„igen”, mondta"},
		{"balanced straight doubles", `mondta: "igen", aztán "nem"`, "mondta: „igen”, aztán „nem”"},
		{"odd straight doubles untouched", `a " b`, `a " b`},
		{"ellipsis", "Várj...", "Várj…"},
		{"four dots keep leader", "Tovább....", "Tovább.…"},
		{"five dots keep leaders", ".....", "..…"},
		{"two dots untouched", "só.. bors", "só.. bors"},
		{"en and em dash", "A–B, C—D", "A-B, C-D"},
		{"plain hyphen untouched", "A-B", "A-B"},
		{"combined", "''Mentés''... – kész", "„Mentés”… - kész"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixPunctuation(tt.in); got != tt.want {
				t.Fatalf("FixPunctuation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Typographic output must be a fixed point: fixing already fixed text
// changes nothing.
func TestFixPunctuation_Idempotent(t *testing.T) {
	inputs := []string{
		"az „alma” piros",
		"Várj…",
		"A-B",
		"mondta: „igen”, aztán „nem”",
	}
	for _, in := range inputs {
		if got := FixPunctuation(in); got != in {
			t.Fatalf("FixPunctuation(%q) = %q, want unchanged", in, got)
		}
	}
}
