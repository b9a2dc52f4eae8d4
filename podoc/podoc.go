// Package podoc implements a byte-preserving document model for PO
// translation catalogs.
//
// Unlike a structured parser, podoc never reshapes content: a file is
// split into a preamble and opaque entry blocks made of raw lines
// (terminators included), and editing happens by replacing whole lines
// inside one block. Concatenating the preamble and the blocks of an
// unmodified document reproduces the input byte for byte, which is what
// lets a fill or fix operation touch one entry without the file diff
// showing anything else.
package podoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Block is the raw line run of a single catalog entry, from its msgid
// declaration up to the line before the next one. Lines keep their
// original terminators.
type Block []string

// Document is a catalog file split into a preamble and entry blocks.
type Document struct {
	// Preamble holds every raw line before the first msgid declaration.
	// For a file without entries it holds the whole file.
	Preamble []string
	// Blocks are the entry blocks in file order.
	Blocks []Block

	// endedBlank records whether the source file's last line was blank,
	// so Write can restore a trailing blank line.
	endedBlank bool
}

// IsBoundary reports whether a raw line opens a new entry. Only plain
// msgid declarations count: msgid_plural does not, and obsolete
// "#~ msgid" lines stay inside the block they follow.
func IsBoundary(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "msgid ")
}

// Parse splits raw catalog content into a Document. The split is a pure
// partition: no line is altered, duplicated or dropped.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return split(splitLines(string(data))), nil
}

// ParseFile reads and splits a catalog from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// splitLines cuts content into lines that keep their terminators. A file
// that does not end in a newline yields a final line without one.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func split(lines []string) *Document {
	doc := &Document{}
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		doc.endedBlank = true
	}

	first := -1
	for i, ln := range lines {
		if IsBoundary(ln) {
			first = i
			break
		}
	}
	if first < 0 {
		doc.Preamble = lines
		return doc
	}

	doc.Preamble = lines[:first]
	start := first
	for i := first + 1; i < len(lines); i++ {
		if IsBoundary(lines[i]) {
			doc.Blocks = append(doc.Blocks, Block(lines[start:i]))
			start = i
		}
	}
	doc.Blocks = append(doc.Blocks, Block(lines[start:]))
	return doc
}

// WithBlocks returns a document that shares the preamble and
// trailing-line behavior of d but carries the given block list. Patching
// operations use it to leave their input document untouched.
func (d *Document) WithBlocks(blocks []Block) *Document {
	return &Document{Preamble: d.Preamble, Blocks: blocks, endedBlank: d.endedBlank}
}

// lines reassembles the document in file order, restoring a trailing
// blank line when the source had one and the output would not.
func (d *Document) lines() []string {
	out := make([]string, 0, len(d.Preamble)+len(d.Blocks)*4)
	out = append(out, d.Preamble...)
	for _, b := range d.Blocks {
		out = append(out, b...)
	}
	if d.endedBlank && (len(out) == 0 || strings.TrimSpace(out[len(out)-1]) != "") {
		out = append(out, "\n")
	}
	return out
}

// Write emits the document. While no block has been replaced the output
// is byte-identical to the parsed input.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, ln := range d.lines() {
		if _, err := bw.WriteString(ln); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the document to disk.
func (d *Document) WriteFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return d.Write(out)
}
