package flatten

import (
	"strings"

	"github.com/sokinpui/nbanswer/model"
)

// Text joins the trimmed text of every non-empty unit with newlines.
// The result is the diff input for the document; it is not normalized.
func Text(doc model.Document) string {
	parts := make([]string, 0, len(doc.Units))
	for _, unit := range doc.Units {
		if trimmed := strings.TrimSpace(unit.Raw); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n")
}

// UnitTexts returns the trimmed text of every unit, markers included, in document order.
func UnitTexts(doc model.Document) []string {
	texts := make([]string, len(doc.Units))
	for i, unit := range doc.Units {
		texts[i] = strings.TrimSpace(unit.Raw)
	}
	return texts
}
