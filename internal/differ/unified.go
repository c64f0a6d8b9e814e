package differ

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/nbanswer/internal/normalize"
	"github.com/sokinpui/nbanswer/model"
)

// Unified renders the classic unified diff between the two texts. A negative
// context renders the whole file as one hunk.
func Unified(templateText, targetText, fromName, toName string, context int) (string, error) {
	a, b := normalize.SplitLines(templateText), normalize.SplitLines(targetText)
	if context < 0 {
		context = max(len(a), len(b))
	}
	diff := difflib.UnifiedDiff{
		A:        terminated(a),
		B:        terminated(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to render unified diff: %w", err)
	}
	return out, nil
}

func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}

// ParseUnified classifies the lines of unified diff text. File headers are
// dropped and every "@@" hunk header becomes a separator.
func ParseUnified(diffText string) []model.DiffLine {
	var out []model.DiffLine
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			continue
		case strings.HasPrefix(line, "@@"):
			out = append(out, model.DiffLine{Separator: true})
		case strings.HasPrefix(line, "+"):
			out = append(out, model.DiffLine{Category: model.Inserted, Text: trimRight(line[1:])})
		case strings.HasPrefix(line, "-"):
			out = append(out, model.DiffLine{Category: model.Removed, Text: trimRight(line[1:])})
		case strings.HasPrefix(line, " "):
			out = append(out, model.DiffLine{Category: model.Unchanged, Text: trimRight(line[1:])})
		}
	}
	return out
}
