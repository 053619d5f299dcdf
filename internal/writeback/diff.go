package writeback

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// UnifiedDiff returns a unified diff from before to after, labelled with
// path. It returns "" when the two are equal.
func UnifiedDiff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			all = append(all, diffLine{op: d.Type, text: line})
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s\n", path, path)
	for _, h := range hunks(all) {
		writeHunk(&out, all, h)
	}
	return out.String()
}

// splitLines splits text after each newline, keeping the newline.
func splitLines(text string) []string {
	var out []string
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			out = append(out, text)
			break
		}
		out = append(out, text[:i+1])
		text = text[i+1:]
	}
	return out
}

type hunk struct{ start, end int } // indexes into the line list, end exclusive

// hunks groups changed lines with their context, merging groups whose
// context would touch.
func hunks(lines []diffLine) []hunk {
	var out []hunk
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(i-contextLines, 0)
		end := min(i+1+contextLines, len(lines))
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)
			continue
		}
		out = append(out, hunk{start: start, end: end})
	}
	return out
}

func writeHunk(out *strings.Builder, lines []diffLine, h hunk) {
	// Line numbers of the hunk start in the old and new files (1-based).
	oldLine, newLine := 1, 1
	for _, l := range lines[:h.start] {
		if l.op != diffmatchpatch.DiffInsert {
			oldLine++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newLine++
		}
	}

	var oldCount, newCount int
	var body strings.Builder
	for _, l := range lines[h.start:h.end] {
		prefix := " "
		switch l.op {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			oldCount++
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			newCount++
		default:
			oldCount++
			newCount++
		}
		body.WriteString(prefix)
		body.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			body.WriteString("\n\\ No newline at end of file\n")
		}
	}

	fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", oldLine, oldCount, newLine, newCount)
	out.WriteString(body.String())
}

var (
	headerColor = color.New(color.Bold)
	hunkColor   = color.New(color.FgCyan)
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
)

// ColorDiff colours a diff produced by UnifiedDiff for terminal output.
// Colouring follows color.NoColor, so redirected output stays plain.
func ColorDiff(diff string) string {
	var out strings.Builder
	for _, line := range splitLines(diff) {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]
		switch {
		case strings.HasPrefix(body, "--- "), strings.HasPrefix(body, "+++ "):
			out.WriteString(headerColor.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			out.WriteString(hunkColor.Sprint(body))
		case strings.HasPrefix(body, "+"):
			out.WriteString(addColor.Sprint(body))
		case strings.HasPrefix(body, "-"):
			out.WriteString(delColor.Sprint(body))
		default:
			out.WriteString(body)
		}
		out.WriteString(nl)
	}
	return out.String()
}
