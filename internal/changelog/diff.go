package changelog

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffKind tells whether a diff line was kept, removed or added.
type DiffKind int

const (
	DiffEqual DiffKind = iota
	DiffDelete
	DiffInsert
)

// DiffLine is one line of a line-oriented diff.
type DiffLine struct {
	Kind DiffKind
	Text string
}

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

// Diff compares two documents line by line. Runs of unchanged lines longer
// than the surrounding context are collapsed into a single "..." line.
func Diff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out []DiffLine
	for i, d := range diffs {
		lines := splitDiffText(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			out = appendLines(out, DiffDelete, lines)
		case diffmatchpatch.DiffInsert:
			out = appendLines(out, DiffInsert, lines)
		default:
			out = append(out, collapseEqual(lines, i == 0, i == len(diffs)-1)...)
		}
	}
	return out
}

// collapseEqual keeps only the context lines of an unchanged run.
func collapseEqual(lines []string, first, last bool) []DiffLine {
	head, tail := diffContext, diffContext
	if first {
		head = 0
	}
	if last {
		tail = 0
	}

	if len(lines) <= head+tail {
		return appendLines(nil, DiffEqual, lines)
	}

	var out []DiffLine
	out = appendLines(out, DiffEqual, lines[:head])
	out = append(out, DiffLine{Kind: DiffEqual, Text: "..."})
	return appendLines(out, DiffEqual, lines[len(lines)-tail:])
}

func appendLines(out []DiffLine, kind DiffKind, lines []string) []DiffLine {
	for _, l := range lines {
		out = append(out, DiffLine{Kind: kind, Text: l})
	}
	return out
}

// splitDiffText splits a diff chunk into lines, dropping the newline that
// terminates the chunk.
func splitDiffText(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// HasChanges returns true if any line was added or removed.
func HasChanges(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Kind != DiffEqual {
			return true
		}
	}
	return false
}
