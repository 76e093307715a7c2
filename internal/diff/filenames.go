package diff

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

const (
	fileHeader      = "diff --git "
	hunkMarker      = "@@ "
	nullDevice      = "/dev/null"
	binaryIndicator = "Binary files "
	renameFrom      = "rename from "
	renameTo        = "rename to "
)

// ErrMalformedDiff is returned when a file block does not have the shape of a
// git unified diff.
var ErrMalformedDiff = errors.New("malformed diff")

// File is a single file's change block within a diff.
// OldPath is empty for added files and NewPath is empty for deleted files.
type File struct {
	OldPath string
	NewPath string
	Binary  bool
	Hunks   []Hunk
}

// Name returns the logical filename of the change: the new path, or the old
// path when the file was deleted.
func (f File) Name() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// IsDeleted reports whether the change removes the file.
func (f File) IsDeleted() bool {
	return f.NewPath == ""
}

// Filenames returns the logical filenames touched by the diff, one per file
// block, in diff order. The sequence is single-pass. If a block is malformed
// the sequence yields one error wrapping ErrMalformedDiff and stops.
func Filenames(text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for chunk := range chunks(text) {
			f, err := parseHeader(chunk)
			if err != nil {
				yield("", err)
				return
			}
			if !yield(f.Name(), nil) {
				return
			}
		}
	}
}

// chunks splits diff text on lines beginning with the file header marker.
// Each chunk starts right after "diff --git " and anything before the first
// header is discarded.
func chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := headerIndex(text, 0)
		for start >= 0 {
			body := start + len(fileHeader)
			next := headerIndex(text, body)
			end := next
			if end < 0 {
				end = len(text)
			}
			if !yield(text[body:end]) {
				return
			}
			start = next
		}
	}
}

// headerIndex returns the offset of the next line at or after from that
// starts with the file header marker, or -1.
func headerIndex(text string, from int) int {
	if from == 0 && strings.HasPrefix(text, fileHeader) {
		return 0
	}
	i := strings.Index(text[from:], "\n"+fileHeader)
	if i < 0 {
		return -1
	}
	return from + i + 1
}

// splitChunk separates a file block into its header lines and the remaining
// hunk text. Blank header lines are dropped.
func splitChunk(chunk string) (header []string, hunks string) {
	meta := chunk
	if i := strings.Index(chunk, "\n"+hunkMarker); i >= 0 {
		meta, hunks = chunk[:i], chunk[i+1:]
	}

	for _, line := range strings.Split(meta, "\n") {
		line = strings.TrimRight(line, "\r\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		header = append(header, line)
	}
	return header, hunks
}

// parseHeader resolves the old and new paths of a file block from its header.
func parseHeader(chunk string) (File, error) {
	header, _ := splitChunk(chunk)
	if len(header) == 0 {
		return File{}, malformed("empty file block")
	}

	var (
		f   File
		err error
	)
	if len(header) == 1 {
		f, err = parseGitHeader(header[0])
	} else {
		before, after := header[len(header)-2], header[len(header)-1]
		switch {
		case strings.HasPrefix(after, binaryIndicator):
			f, err = parseBinary(after)
		case strings.HasPrefix(after, "+++"):
			f, err = parseTextual(before, after)
		case strings.HasPrefix(after, renameTo):
			f = File{
				OldPath: strings.TrimPrefix(before, renameFrom),
				NewPath: strings.TrimPrefix(after, renameTo),
			}
		default:
			// Mode changes and empty additions carry no path lines.
			f, err = parseGitHeader(header[0])
		}
	}
	if err != nil {
		return File{}, err
	}

	if name := f.Name(); name == "" || name == nullDevice {
		return File{}, malformed("no filename in block %q", header[0])
	}
	return f, nil
}

// parseBinary handles "Binary files a/old and b/new differ".
func parseBinary(line string) (File, error) {
	body := strings.TrimPrefix(line, binaryIndicator)
	i := strings.LastIndexByte(body, ' ')
	if i < 0 {
		return File{}, malformed("binary indicator %q", line)
	}
	body = body[:i]

	f := File{Binary: true}
	switch {
	case strings.HasPrefix(body, nullDevice+" and "):
		f.NewPath = stripPrefix(strings.TrimPrefix(body, nullDevice+" and "))
	case strings.HasSuffix(body, " and "+nullDevice):
		f.OldPath = stripPrefix(strings.TrimSuffix(body, " and "+nullDevice))
	default:
		before, after, ok := strings.Cut(body, " and b/")
		if !ok {
			return File{}, malformed("binary indicator %q", line)
		}
		f.OldPath = stripPrefix(before)
		f.NewPath = after
	}
	return f, nil
}

// parseTextual handles the "--- a/old" and "+++ b/new" path lines.
func parseTextual(before, after string) (File, error) {
	if !strings.HasPrefix(before, "---") {
		return File{}, malformed("expected --- line before %q", after)
	}

	oldPath, err := pathField(before)
	if err != nil {
		return File{}, err
	}
	newPath, err := pathField(after)
	if err != nil {
		return File{}, err
	}

	var f File
	if oldPath != nullDevice {
		f.OldPath = stripPrefix(oldPath)
	}
	if newPath != nullDevice {
		f.NewPath = stripPrefix(newPath)
	}
	return f, nil
}

// parseGitHeader falls back to the "a/old b/new" remainder of the file header.
func parseGitHeader(line string) (File, error) {
	before, after, ok := strings.Cut(line, " b/")
	if !ok {
		return File{}, malformed("file header %q", line)
	}
	return File{OldPath: stripPrefix(before), NewPath: after}, nil
}

// pathField returns the path following the marker token of a path line.
func pathField(line string) (string, error) {
	_, rest, ok := strings.Cut(line, " ")
	rest = strings.TrimLeft(rest, " ")
	if !ok || rest == "" {
		return "", malformed("path line %q", line)
	}
	return rest, nil
}

// stripPrefix removes the two-character a/ or b/ prefix.
func stripPrefix(p string) string {
	if len(p) < 2 {
		return ""
	}
	return p[2:]
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDiff, fmt.Sprintf(format, args...))
}
