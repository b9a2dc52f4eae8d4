// pokit — format-preserving PO catalog reconciliation kit.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/minios-linux/pokit/config"
	"github.com/minios-linux/pokit/i18n"
	"github.com/minios-linux/pokit/podoc"
	"github.com/minios-linux/pokit/pofile"
	"github.com/minios-linux/pokit/reconcile"
	"github.com/minios-linux/pokit/textdiff"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// rootDir is the directory .pokit.yaml is looked up in (global --root flag).
var rootDir = "."

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pokit",
		Short: "Format-preserving PO catalog reconciliation kit",
		Long: `pokit — format-preserving PO catalog reconciliation kit.

Compares, cross-fills, lints and fixes gettext PO catalogs exported by
different toolchains for the same product. Entries are matched on
canonicalized msgids (markup, placeholders and trailing punctuation
normalized away), and every edit is surgical: untouched entries come
back byte-identical, comments and line wrapping included.

Commands:
  compare     Report diverging translations between two catalogs
  fill        Fill empty target entries from a source catalog
  lint        Report format and punctuation issues
  fix         Apply punctuation auto-fixes
  status      Show per-catalog translation statistics
  extract     Dump translated pairs to a text file

File arguments accept ** glob patterns. Compare and fill also accept
--pair NAME resolved from .pokit.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Directory containing .pokit.yaml")

	root.AddCommand(
		newCompareCmd(),
		newFillCmd(),
		newLintCmd(),
		newFixCmd(),
		newStatusCmd(),
		newExtractCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pokit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// compare (read-only: divergence report between two catalogs)
// ---------------------------------------------------------------------------

func newCompareCmd() *cobra.Command {
	var pairName string

	cmd := &cobra.Command{
		Use:   "compare [A.po B.po]",
		Short: "Report diverging translations between two catalogs",
		Long: `Compare two catalogs of the same material and report entries whose
translations drifted apart.

Entries are matched on canonical msgid keys, so an Android export and an
iOS export line up even when their source strings differ in markup or
placeholder dialect. Does not modify any files.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathA, pathB, err := resolvePair(args, pairName)
			if err != nil {
				return err
			}
			return runCompare(pathA, pathB)
		},
	}

	cmd.Flags().StringVar(&pairName, "pair", "", "Named pair from .pokit.yaml")

	return cmd
}

func runCompare(pathA, pathB string) error {
	fileA, err := pofile.Load(pathA)
	if err != nil {
		return err
	}
	fileB, err := pofile.Load(pathB)
	if err != nil {
		return err
	}

	divs := reconcile.Compare(fileA.Entries, fileB.Entries)
	if len(divs) == 0 {
		logSuccess(i18n.T("No diverging translations found"))
		return nil
	}

	for _, d := range divs {
		fmt.Printf("\n%s%s%s\n", colorBlue, d.Display, colorReset)
		printValueDiff(d.ValueA, d.ValueB)
		fmt.Printf("  %s %.2f\n", i18n.T("similarity:"), d.Similarity)
	}
	fmt.Println()

	logWarning(i18n.N("%d diverging translation", "%d diverging translations", len(divs)), len(divs))
	return nil
}

// printValueDiff renders the two sides of one divergence, deletions red
// on the A line and insertions green on the B line.
func printValueDiff(a, b string) {
	var oldLine, newLine strings.Builder
	for _, s := range textdiff.Diff(a, b) {
		switch s.Op {
		case textdiff.Equal:
			oldLine.WriteString(s.A)
			newLine.WriteString(s.B)
		case textdiff.Delete:
			oldLine.WriteString(colorRed + s.A + colorReset)
		case textdiff.Insert:
			newLine.WriteString(colorGreen + s.B + colorReset)
		case textdiff.Replace:
			oldLine.WriteString(colorRed + s.A + colorReset)
			newLine.WriteString(colorGreen + s.B + colorReset)
		}
	}
	fmt.Printf("  A: %s\n", oldLine.String())
	fmt.Printf("  B: %s\n", newLine.String())
}

// ---------------------------------------------------------------------------
// fill (propagate translations from a source catalog into empty entries)
// ---------------------------------------------------------------------------

func newFillCmd() *cobra.Command {
	var (
		pairName        string
		outPath         string
		allowSingleWord bool
	)

	cmd := &cobra.Command{
		Use:   "fill [SOURCE.po TARGET.po]",
		Short: "Fill empty target entries from a source catalog",
		Long: `Copy translations from the source catalog into the empty entries of
the target catalog, matching entries on canonical msgid keys.

Already-translated target entries are never overwritten; when one
disagrees with its source counterpart it is reported as a divergence
instead. Filled entries gain the fuzzy flag for translator review.
The target file itself is not modified — the result is written to
<target>_filled.po unless -o is given.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcPath, tgtPath, err := resolvePair(args, pairName)
			if err != nil {
				return err
			}

			opts := reconcile.FillOptions{AllowSingleWord: allowSingleWord}
			if !cmd.Flags().Changed("allow-single-word") {
				pf, err := config.LoadPokitFile(rootDir)
				if err != nil {
					return err
				}
				if pf != nil {
					opts.AllowSingleWord = pf.AllowSingleWord
				}
			}

			if outPath == "" {
				outPath = defaultOutPath(tgtPath, "_filled")
			}
			return runFill(srcPath, tgtPath, outPath, opts)
		},
	}

	cmd.Flags().StringVar(&pairName, "pair", "", "Named pair from .pokit.yaml")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default <target>_filled.po)")
	cmd.Flags().BoolVar(&allowSingleWord, "allow-single-word", false, "Also fill single-word entries")

	return cmd
}

func runFill(srcPath, tgtPath, outPath string, opts reconcile.FillOptions) error {
	source, err := pofile.Load(srcPath)
	if err != nil {
		return err
	}
	target, err := podoc.ParseFile(tgtPath)
	if err != nil {
		return err
	}

	filled, divs, counts := reconcile.Fill(source.Entries, target, opts)

	for _, d := range divs {
		fmt.Printf("\n%s%s%s\n", colorBlue, d.Display, colorReset)
		printValueDiff(d.ValueA, d.ValueB)
	}
	if len(divs) > 0 {
		fmt.Println()
		logWarning(i18n.N("%d existing translation diverges from the source",
			"%d existing translations diverge from the source", len(divs)), len(divs))
	}

	logInfo(i18n.T("Skipped: %d already translated, %d without source, %d single-word"),
		counts.SkippedAlreadyTranslated, counts.SkippedNoSource, counts.SkippedSingleWord)

	if counts.Filled == 0 {
		logInfo(i18n.T("Nothing to fill, no file written"))
		return nil
	}
	if err := filled.WriteFile(outPath); err != nil {
		return err
	}
	logSuccess(i18n.N("Filled %d entry → %s", "Filled %d entries → %s", counts.Filled),
		counts.Filled, outPath)
	return nil
}

// ---------------------------------------------------------------------------
// lint (read-only: format and punctuation issue report)
// ---------------------------------------------------------------------------

func newLintCmd() *cobra.Command {
	var checkNames []string

	cmd := &cobra.Command{
		Use:   "lint FILE.po...",
		Short: "Report format and punctuation issues",
		Long: `Check every entry's msgid and msgstr for structural damage (unbalanced
CDATA, markdown emphasis or HTML tags) and typography slips (ASCII
ellipsis, straight quotes). Does not modify any files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("checks") {
				pf, err := config.LoadPokitFile(rootDir)
				if err != nil {
					return err
				}
				if pf != nil {
					checkNames = pf.Checks
				}
			}
			opts, err := lintOptions(checkNames)
			if err != nil {
				return err
			}

			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}

			issueTotal := 0
			for _, path := range paths {
				n, err := runLint(path, opts)
				if err != nil {
					return err
				}
				issueTotal += n
			}
			if issueTotal == 0 {
				logSuccess(i18n.T("No issues found"))
			} else {
				logWarning(i18n.N("%d issue found", "%d issues found", issueTotal), issueTotal)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&checkNames, "checks", []string{config.CheckFormat, config.CheckPunctuation},
		"Checks to run (format, punctuation)")

	return cmd
}

func runLint(path string, opts reconcile.LintOptions) (int, error) {
	f, err := pofile.Load(path)
	if err != nil {
		return 0, err
	}

	reports := reconcile.Lint(f.Entries, opts)
	if len(reports) == 0 {
		return 0, nil
	}

	fmt.Printf("\n%s%s%s\n", colorYellow, path, colorReset)
	issues := 0
	for _, r := range reports {
		fmt.Printf("\n  %s%s%s\n", colorBlue, r.Display, colorReset)
		if r.Value != "" {
			fmt.Printf("  msgstr: %s\n", r.Value)
		}
		for _, msg := range r.Issues {
			fmt.Printf("    - %s\n", msg)
			issues++
		}
	}
	fmt.Println()
	return issues, nil
}

// lintOptions maps check names to the reconcile batteries.
func lintOptions(names []string) (reconcile.LintOptions, error) {
	var opts reconcile.LintOptions
	for _, name := range names {
		switch name {
		case config.CheckFormat:
			opts.Format = true
		case config.CheckPunctuation:
			opts.Punctuation = true
		default:
			return opts, fmt.Errorf("unknown check %q (valid: %s, %s)",
				name, config.CheckFormat, config.CheckPunctuation)
		}
	}
	return opts, nil
}

// ---------------------------------------------------------------------------
// fix (punctuation auto-fixes, written to a new file)
// ---------------------------------------------------------------------------

func newFixCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "fix FILE.po...",
		Short: "Apply punctuation auto-fixes",
		Long: `Replace ASCII ellipses with …, straight quote pairs with „ ”, and
en/em dashes with hyphens in every translated value. Changed entries
gain the fuzzy flag; untouched entries stay byte-identical. The input
file is kept as the audit trail — the result goes to <file>_fixed.po
unless -o is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if outPath != "" && len(paths) > 1 {
				return fmt.Errorf("-o needs a single input file, got %d", len(paths))
			}

			for _, path := range paths {
				out := outPath
				if out == "" {
					out = defaultOutPath(path, "_fixed")
				}
				if err := runFix(path, out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default <file>_fixed.po)")

	return cmd
}

func runFix(path, outPath string) error {
	doc, err := podoc.ParseFile(path)
	if err != nil {
		return err
	}

	fixed, n := reconcile.AutoFix(doc)
	if n == 0 {
		logInfo(i18n.T("%s: nothing to fix"), path)
		return nil
	}
	if err := fixed.WriteFile(outPath); err != nil {
		return err
	}
	logSuccess(i18n.N("%s: fixed %d entry → %s", "%s: fixed %d entries → %s", n), path, n, outPath)
	return nil
}

// ---------------------------------------------------------------------------
// status (read-only: per-catalog translation statistics)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status FILE.po...",
		Short: "Show per-catalog translation statistics",
		Long: `Show translated/fuzzy/empty/obsolete counts and a completeness bar
for each catalog. Does not modify any files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			return runStatus(paths)
		},
	}

	return cmd
}

func runStatus(paths []string) error {
	fmt.Fprintf(os.Stderr, "\n%sTranslation Statistics%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 72))

	for _, path := range paths {
		f, err := pofile.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %-32s %serror: %v%s\n", filepath.Base(path), colorRed, err, colorReset)
			continue
		}

		total, translated, fuzzy, untranslated := f.Stats()
		percent := 0
		if total > 0 {
			percent = translated * 100 / total
		}

		fmt.Fprintf(os.Stderr, "  %-32s %s  %d/%d", filepath.Base(path),
			progressBar(percent, 20), translated, total)
		if fuzzy > 0 {
			fmt.Fprintf(os.Stderr, ", %d fuzzy", fuzzy)
		}
		if untranslated > 0 {
			fmt.Fprintf(os.Stderr, ", %d empty", untranslated)
		}
		if obsolete := len(f.ObsoleteEntries()); obsolete > 0 {
			fmt.Fprintf(os.Stderr, ", %d obsolete", obsolete)
		}
		if lang := f.HeaderField("Language"); lang != "" {
			if name := pofile.LangNameNative(lang); name != "" {
				fmt.Fprintf(os.Stderr, "  (%s)", name)
			} else {
				fmt.Fprintf(os.Stderr, "  (%s)", lang)
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Fprintln(os.Stderr)
	return nil
}

// progressBar renders a colored completeness bar: red below 50%, yellow
// below 100%, green at 100%. Percent is clamped into [0, 100].
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	color := colorGreen
	if percent < 50 {
		color = colorRed
	} else if percent < 100 {
		color = colorYellow
	}

	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s%s%s %3d%%", color, bar, colorReset, percent)
}

// ---------------------------------------------------------------------------
// extract (dump translated pairs to a text file for terminology review)
// ---------------------------------------------------------------------------

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract FILE.po...",
		Short: "Dump translated pairs to a text file",
		Long: `Write the msgid/msgstr pairs of every translated entry into
Extracted_<file>.txt next to the catalog, numbered for terminology
review. Does not modify the catalog.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			for _, path := range paths {
				if err := runExtract(path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	return cmd
}

func runExtract(path string) error {
	f, err := pofile.Load(path)
	if err != nil {
		return err
	}

	var sb strings.Builder
	n := 0
	for _, e := range f.Entries {
		if e.MsgID == "" || e.Obsolete || e.Effective() == "" {
			continue
		}
		n++
		fmt.Fprintf(&sb, "msgid(%d) = %s\n", n, e.MsgID)
		fmt.Fprintf(&sb, "msgstr(%d) = %s\n\n", n, e.Effective())
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(filepath.Dir(path), "Extracted_"+base+".txt")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	logSuccess(i18n.N("%s: extracted %d pair → %s", "%s: extracted %d pairs → %s", n), path, n, outPath)
	return nil
}

// ---------------------------------------------------------------------------
// shared helpers
// ---------------------------------------------------------------------------

// resolvePair turns the command arguments into a (first, second) path
// couple, either from two positional arguments or from a named
// .pokit.yaml pair.
func resolvePair(args []string, pairName string) (string, string, error) {
	if pairName != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("--pair and positional files are mutually exclusive")
		}
		pf, err := config.LoadPokitFile(rootDir)
		if err != nil {
			return "", "", err
		}
		if pf == nil {
			return "", "", fmt.Errorf("--pair %s given but no %s found in %s", pairName, config.PokitFileName, rootDir)
		}
		return pf.Pair(pairName)
	}
	if len(args) != 2 {
		return "", "", fmt.Errorf("need two catalog files (or --pair NAME), got %d", len(args))
	}
	return args[0], args[1], nil
}

// expandPatterns resolves file arguments, expanding doublestar glob
// patterns and keeping plain paths as-is. The result preserves argument
// order, deduplicated; a pattern matching nothing is an error.
func expandPatterns(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			if _, err := os.Stat(arg); err != nil {
				return nil, err
			}
			if !seen[arg] {
				seen[arg] = true
				paths = append(paths, arg)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matches no files", arg)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	return paths, nil
}

// defaultOutPath derives the output filename for fill and fix:
// po/hu.po + "_filled" → po/hu_filled.po.
func defaultOutPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
