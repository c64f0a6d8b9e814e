// Package differ computes a line diff between a template and a submission
// and folds the classified lines into groups.
package differ

import (
	"slices"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/nbanswer/internal/normalize"
	"github.com/sokinpui/nbanswer/model"
)

// FullContext makes every aligned line part of the diff output.
const FullContext = -1

// Options controls how the diff is produced.
type Options struct {
	// Context is the number of unchanged lines kept around each change.
	// A negative value keeps all of them, so identical inputs still produce
	// one unchanged group.
	Context int
}

// DefaultOptions returns full-context options.
func DefaultOptions() Options {
	return Options{Context: FullContext}
}

// Groups diffs the two texts line by line and returns the merged groups.
// "\r\n" and a lone "\r" count as line breaks, so line endings never decide
// whether two lines match.
func Groups(templateText, targetText string, opts Options) []model.DiffGroup {
	lines := Classify(normalize.SplitLines(templateText), normalize.SplitLines(targetText), opts)
	return Merge(Coalesce(lines))
}

// Classify aligns a against b and tags every line of the result. With a
// limited context the output is split into hunks; each hunk starts with a
// separator line, as a "@@" header would in a unified diff.
func Classify(a, b []string, opts Options) []model.DiffLine {
	matcher := difflib.NewMatcher(a, b)

	var hunks [][]difflib.OpCode
	if opts.Context < 0 {
		hunks = [][]difflib.OpCode{matcher.GetOpCodes()}
	} else {
		hunks = matcher.GetGroupedOpCodes(opts.Context)
	}

	var out []model.DiffLine
	for _, hunk := range hunks {
		if opts.Context >= 0 {
			out = append(out, model.DiffLine{Separator: true})
		}
		for _, op := range hunk {
			out = appendOp(out, op, a, b)
		}
	}
	return out
}

func appendOp(out []model.DiffLine, op difflib.OpCode, a, b []string) []model.DiffLine {
	emit := func(category model.Category, lines []string) {
		for _, line := range lines {
			out = append(out, model.DiffLine{Category: category, Text: trimRight(line)})
		}
	}
	switch op.Tag {
	case 'e':
		emit(model.Unchanged, a[op.I1:op.I2])
	case 'd':
		emit(model.Removed, a[op.I1:op.I2])
	case 'i':
		emit(model.Inserted, b[op.J1:op.J2])
	case 'r':
		emit(model.Removed, a[op.I1:op.I2])
		emit(model.Inserted, b[op.J1:op.J2])
	}
	return out
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// Coalesce folds classified lines into runs of one category. A separator
// closes the open run without starting a new one.
func Coalesce(lines []model.DiffLine) []model.DiffGroup {
	var groups []model.DiffGroup
	var open *model.DiffGroup
	for _, line := range lines {
		groups, open = step(groups, open, line)
	}
	return closeOpen(groups, open)
}

func step(groups []model.DiffGroup, open *model.DiffGroup, line model.DiffLine) ([]model.DiffGroup, *model.DiffGroup) {
	if line.Separator {
		return closeOpen(groups, open), nil
	}
	if open == nil || open.Category != line.Category {
		groups = closeOpen(groups, open)
		open = &model.DiffGroup{Category: line.Category}
	}
	open.Lines = append(open.Lines, line.Text)
	return groups, open
}

func closeOpen(groups []model.DiffGroup, open *model.DiffGroup) []model.DiffGroup {
	if open == nil || len(open.Lines) == 0 {
		return groups
	}
	return append(groups, *open)
}

// Merge joins adjacent groups that share a category. The input is not modified.
func Merge(groups []model.DiffGroup) []model.DiffGroup {
	if len(groups) == 0 {
		return nil
	}
	merged := make([]model.DiffGroup, 0, len(groups))
	for _, g := range groups {
		last := len(merged) - 1
		if last >= 0 && merged[last].Category == g.Category {
			merged[last].Lines = append(merged[last].Lines, g.Lines...)
			continue
		}
		merged = append(merged, model.DiffGroup{Category: g.Category, Lines: slices.Clone(g.Lines)})
	}
	return merged
}
