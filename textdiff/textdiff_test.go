package textdiff

import (
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Divergence tests
// ---------------------------------------------------------------------------

func TestCheckDivergence_PlaceholderDialectsAgree(t *testing.T) {
	got := CheckDivergence("Mentés ide: %1$s", "Mentés ide: %s")
	if got.Diverges {
		t.Fatal("dialect-only difference reported as divergence")
	}
	if got.Similarity != 1.0 {
		t.Fatalf("Similarity = %v, want 1.0", got.Similarity)
	}
}

func TestCheckDivergence_PunctuationAndCaseTolerated(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Kész.", "kész"},
		{"Betöltés…", "Betöltés"},
		{"Mégse!", "Mégse"},
		{"Mentsem?", "mentsem?"},
	}
	for _, tt := range tests {
		got := CheckDivergence(tt.a, tt.b)
		if got.Diverges || got.Similarity != 1.0 {
			t.Errorf("CheckDivergence(%q, %q) = %+v, want equal", tt.a, tt.b, got)
		}
	}
}

// A question mark against a plain ending fails the structural equality,
// but identical word sets still score 1.0.
func TestCheckDivergence_QuestionMismatchFallsThrough(t *testing.T) {
	got := CheckDivergence("Mentsem?", "Mentsem")
	if got.Diverges {
		t.Fatalf("CheckDivergence = %+v, want word-set agreement", got)
	}
	if got.Similarity != 1.0 {
		t.Fatalf("Similarity = %v, want 1.0", got.Similarity)
	}
}

func TestCheckDivergence_WordOverlap(t *testing.T) {
	got := CheckDivergence("Open settings", "Open the app settings now")
	if !got.Diverges {
		t.Fatal("2/5 word overlap not reported as divergence")
	}
	if got.Similarity != 0.4 {
		t.Fatalf("Similarity = %v, want 0.4", got.Similarity)
	}
}

func TestCheckDivergence_ThresholdIsStrict(t *testing.T) {
	// 7 shared words, 10 in the union: exactly the threshold, so the
	// pair still counts as agreeing.
	got := CheckDivergence("a b c d e f g h", "a b c d e f g i j")
	if got.Diverges {
		t.Fatalf("Jaccard %v at the threshold must not diverge", got.Similarity)
	}
	if got.Similarity < SimilarityThreshold {
		t.Fatalf("Similarity = %v, want >= %v", got.Similarity, SimilarityThreshold)
	}
}

func TestCheckDivergence_EmptyInputs(t *testing.T) {
	if got := CheckDivergence("", ""); got.Diverges || got.Similarity != 1.0 {
		t.Fatalf("both empty: got %+v, want agreement", got)
	}
	if got := CheckDivergence("", "valami"); !got.Diverges || got.Similarity != 0 {
		t.Fatalf("empty vs text: got %+v, want divergence at 0", got)
	}
}

func TestCheckDivergence_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Open settings", "Open the app settings now"},
		{"Mentés ide: %1$s", "Mentés ide: %s"},
		{"", "valami"},
		{"A fájl törölve", "A mappa áthelyezve"},
	}
	for _, p := range pairs {
		ab := CheckDivergence(p[0], p[1])
		ba := CheckDivergence(p[1], p[0])
		if ab != ba {
			t.Errorf("CheckDivergence(%q, %q) = %+v, reversed %+v", p[0], p[1], ab, ba)
		}
	}
}

// ---------------------------------------------------------------------------
// Diff tests
// ---------------------------------------------------------------------------

func TestDiff_EqualStrings(t *testing.T) {
	got := Diff("Mentés", "Mentés")
	want := []Span{{Op: Equal, A: "Mentés", B: "Mentés"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_ReplaceRun(t *testing.T) {
	got := Diff("Wait...", "Wait…")
	want := []Span{
		{Op: Equal, A: "Wait", B: "Wait"},
		{Op: Replace, A: "...", B: "…"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiff_InsertAndDelete(t *testing.T) {
	got := Diff("Törlés", "Törlések")
	want := []Span{
		{Op: Equal, A: "Törlés", B: "Törlés"},
		{Op: Insert, B: "ek"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("insert: Diff = %+v, want %+v", got, want)
	}

	got = Diff("Törlések", "Törlés")
	want = []Span{
		{Op: Equal, A: "Törlés", B: "Törlés"},
		{Op: Delete, A: "ek"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("delete: Diff = %+v, want %+v", got, want)
	}
}

// Every edit script must reproduce its inputs: the A sides concatenate
// back to a, the B sides to b, and no two neighboring spans carry the
// same op.
func TestDiff_SpansReconstructInputs(t *testing.T) {
	pairs := [][2]string{
		{"A gyors barna róka átugrik", "A lassú barna macska átugrik"},
		{"Fájl mentése sikertelen", "A mentés sikeres volt"},
		{"", "új szöveg"},
		{"régi szöveg", ""},
		{"változatlan", "változatlan"},
	}
	for _, p := range pairs {
		spans := Diff(p[0], p[1])
		var a, b strings.Builder
		for i, s := range spans {
			a.WriteString(s.A)
			b.WriteString(s.B)
			if i > 0 && spans[i-1].Op == s.Op {
				t.Errorf("Diff(%q, %q): spans %d and %d share op %v", p[0], p[1], i-1, i, s.Op)
			}
			switch s.Op {
			case Equal, Replace:
				if s.Op == Replace && (s.A == "" || s.B == "") {
					t.Errorf("Diff(%q, %q): one-sided Replace %+v", p[0], p[1], s)
				}
			case Delete:
				if s.B != "" {
					t.Errorf("Diff(%q, %q): Delete with B side %+v", p[0], p[1], s)
				}
			case Insert:
				if s.A != "" {
					t.Errorf("Diff(%q, %q): Insert with A side %+v", p[0], p[1], s)
				}
			}
		}
		if a.String() != p[0] || b.String() != p[1] {
			t.Errorf("Diff(%q, %q) reconstructs to (%q, %q)", p[0], p[1], a.String(), b.String())
		}
	}
}
