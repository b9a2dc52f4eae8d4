package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		want    string
	}{
		{
			name:    "clamps below zero",
			percent: -10,
			width:   4,
			want:    colorRed + "░░░░" + colorReset + "   0%",
		},
		{
			name:    "mid range uses yellow",
			percent: 50,
			width:   4,
			want:    colorYellow + "██░░" + colorReset + "  50%",
		},
		{
			name:    "clamps above hundred",
			percent: 120,
			width:   4,
			want:    colorGreen + "████" + colorReset + " 100%",
		},
	}

	for _, tc := range tests {
		if got := progressBar(tc.percent, tc.width); got != tc.want {
			t.Fatalf("%s: progressBar() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDefaultOutPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"po/hu.po", "_filled", "po/hu_filled.po"},
		{"hu.po", "_fixed", "hu_fixed.po"},
		{"catalog", "_fixed", "catalog_fixed"},
	}

	for _, tc := range tests {
		if got := defaultOutPath(tc.path, tc.suffix); got != tc.want {
			t.Fatalf("defaultOutPath(%q, %q) = %q, want %q", tc.path, tc.suffix, got, tc.want)
		}
	}
}

func TestLintOptions(t *testing.T) {
	opts, err := lintOptions([]string{"format", "punctuation"})
	if err != nil {
		t.Fatalf("lintOptions() error = %v", err)
	}
	if !opts.Format || !opts.Punctuation {
		t.Fatalf("lintOptions() = %+v, want both batteries enabled", opts)
	}

	opts, err = lintOptions([]string{"punctuation"})
	if err != nil {
		t.Fatalf("lintOptions() error = %v", err)
	}
	if opts.Format || !opts.Punctuation {
		t.Fatalf("lintOptions() = %+v, want punctuation only", opts)
	}

	if _, err := lintOptions([]string{"spelling"}); err == nil {
		t.Fatal("lintOptions(spelling) succeeded, want error")
	}
}

func TestResolvePair(t *testing.T) {
	a, b, err := resolvePair([]string{"x.po", "y.po"}, "")
	if err != nil {
		t.Fatalf("resolvePair() error = %v", err)
	}
	if a != "x.po" || b != "y.po" {
		t.Fatalf("resolvePair() = %q, %q, want x.po, y.po", a, b)
	}

	if _, _, err := resolvePair([]string{"x.po"}, ""); err == nil {
		t.Fatal("resolvePair with one file succeeded, want error")
	}
	if _, _, err := resolvePair([]string{"x.po"}, "phone"); err == nil {
		t.Fatal("resolvePair with --pair and files succeeded, want error")
	}
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.po", "b.po", "sub/c.po"} {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("msgid \"\"\nmsgstr \"\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("plain path kept as-is", func(t *testing.T) {
		got, err := expandPatterns([]string{filepath.Join(dir, "a.po")})
		if err != nil {
			t.Fatalf("expandPatterns() error = %v", err)
		}
		want := []string{filepath.Join(dir, "a.po")}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expandPatterns() = %v, want %v", got, want)
		}
	})

	t.Run("doublestar glob recurses", func(t *testing.T) {
		got, err := expandPatterns([]string{filepath.Join(dir, "**", "*.po")})
		if err != nil {
			t.Fatalf("expandPatterns() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expandPatterns(**) matched %d files, want 3: %v", len(got), got)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got, err := expandPatterns([]string{
			filepath.Join(dir, "a.po"),
			filepath.Join(dir, "*.po"),
		})
		if err != nil {
			t.Fatalf("expandPatterns() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expandPatterns() = %v, want a.po and b.po once each", got)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := expandPatterns([]string{filepath.Join(dir, "nope.po")}); err == nil {
			t.Fatal("expandPatterns(missing) succeeded, want error")
		}
	})

	t.Run("empty glob errors", func(t *testing.T) {
		if _, err := expandPatterns([]string{filepath.Join(dir, "*.pot")}); err == nil {
			t.Fatal("expandPatterns(no matches) succeeded, want error")
		}
	})
}
