// Package output renders changelog check results as plain text or as GitHub
// Actions workflow commands.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/changelog-check/internal/changelog"
	"github.com/ariel-frischer/changelog-check/internal/progress"
	"github.com/fatih/color"
)

// ciNewline is the escape GitHub Actions uses for a line break inside a
// workflow command.
const ciNewline = "%0A"

// Annotate renders line-addressed violations. On CI each violation becomes a
// single "::error file=...,line=...::..." workflow command; otherwise it is
// rendered as "<path>, line <n>: <message>" with newlines kept.
func Annotate(violations []changelog.Violation, onCI bool) []string {
	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		if onCI {
			lines = append(lines, fmt.Sprintf("::error file=%s,line=%d::%s", v.Path, v.Line, joinCI(v.Message)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s, line %d: %s", v.Path, v.Line, v.Message))
	}
	return lines
}

// FormatMessages renders plain error messages. On CI, embedded newlines are
// re-joined with the workflow command escape so each message stays on one line.
func FormatMessages(messages []string, onCI bool) []string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		if onCI {
			m = joinCI(m)
		}
		lines = append(lines, m)
	}
	return lines
}

// joinCI splits a message into lines and joins them with %0A.
// A single trailing line break is dropped.
func joinCI(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	parts := strings.Split(message, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ciNewline)
}

// Print writes each rendered line to out.
func Print(out io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// StderrCapabilities reports what the terminal behind stderr can render.
// Errors and the summary line are written there.
func StderrCapabilities() progress.TerminalCapabilities {
	return progress.DetectTerminalCapabilities(os.Stderr)
}

// PrintSummary prints a one-line result after the check.
// On a terminal it is prefixed with a green checkmark or a red cross.
func PrintSummary(out io.Writer, problems int, caps progress.TerminalCapabilities) {
	msg := "Changelog check passed"
	if problems > 0 {
		noun := "problems"
		if problems == 1 {
			noun = "problem"
		}
		msg = fmt.Sprintf("Changelog check found %d %s", problems, noun)
	}

	if !caps.IsTTY {
		fmt.Fprintln(out, msg)
		return
	}

	symbols := progress.SelectSymbols(caps)
	mark := color.New(color.FgGreen, color.Bold)
	symbol := symbols.Checkmark
	if problems > 0 {
		mark = color.New(color.FgRed, color.Bold)
		symbol = symbols.Failure
	}
	if !caps.SupportsColor {
		mark.DisableColor()
	}
	fmt.Fprintf(out, "%s %s\n", mark.Sprint(symbol), msg)
}
