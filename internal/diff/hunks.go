package diff

import (
	"iter"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// LineKind classifies a line inside a hunk.
type LineKind int

const (
	// Context lines are present on both sides of the change.
	Context LineKind = iota
	// Added lines exist only in the new file.
	Added
	// Removed lines exist only in the old file.
	Removed
)

// Line is a single hunk line without its leading marker.
// Number is the 1-based line number in the new file for context and added
// lines, and in the old file for removed lines.
type Line struct {
	Kind   LineKind
	Text   string
	Number int
}

// Hunk is one "@@" section of a file block.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// AddedLines returns the lines introduced by the hunk.
func (h Hunk) AddedLines() []Line {
	var added []Line
	for _, l := range h.Lines {
		if l.Kind == Added {
			added = append(added, l)
		}
	}
	return added
}

// Files returns every file block of the diff with its hunks parsed, in diff
// order. Paths are resolved the same way as Filenames. Like Filenames, it stops
// at the first malformed block and yields an error wrapping ErrMalformedDiff.
func Files(text string) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		for chunk := range chunks(text) {
			f, err := parseHeader(chunk)
			if err != nil {
				yield(File{}, err)
				return
			}

			if f.Hunks, err = parseHunks(fileHeader + chunk); err != nil {
				yield(File{}, err)
				return
			}

			if !yield(f, nil) {
				return
			}
		}
	}
}

// parseHunks parses the text fragments of a single file block with gitdiff.
// Fragments whose line counts disagree with their headers, and "@@" lines that
// are not fragment headers, are malformed.
func parseHunks(block string) ([]Hunk, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(block))
	if err != nil {
		return nil, malformed("%v", err)
	}

	var hunks []Hunk
	for _, f := range files {
		for _, frag := range f.TextFragments {
			hunks = append(hunks, convertFragment(frag))
		}
	}

	if want := countHunkHeaders(block); len(hunks) != want {
		return nil, malformed("found %d hunk headers but parsed %d hunks", want, len(hunks))
	}
	return hunks, nil
}

// countHunkHeaders counts the lines of block that start a hunk.
func countHunkHeaders(block string) int {
	n := 0
	for line := range strings.Lines(block) {
		if strings.HasPrefix(line, hunkMarker) {
			n++
		}
	}
	return n
}

// convertFragment numbers the lines of a fragment. Context and added lines
// get their new-file number, removed lines their old-file number.
func convertFragment(frag *gitdiff.TextFragment) Hunk {
	h := Hunk{
		OldStart: int(frag.OldPosition),
		OldLines: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewLines: int(frag.NewLines),
		Lines:    make([]Line, 0, len(frag.Lines)),
	}

	oldLine, newLine := h.OldStart, h.NewStart
	for _, l := range frag.Lines {
		text := strings.TrimSuffix(strings.TrimSuffix(l.Line, "\n"), "\r")
		switch l.Op {
		case gitdiff.OpAdd:
			h.Lines = append(h.Lines, Line{Kind: Added, Text: text, Number: newLine})
			newLine++
		case gitdiff.OpDelete:
			h.Lines = append(h.Lines, Line{Kind: Removed, Text: text, Number: oldLine})
			oldLine++
		default:
			h.Lines = append(h.Lines, Line{Kind: Context, Text: text, Number: newLine})
			oldLine++
			newLine++
		}
	}
	return h
}
