package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/sokinpui/nbanswer/model"
)

// WritePDF renders one page per question listing every submission's answer.
// Core fonts only cover cp1252; characters outside it are replaced.
func WritePDF(path string, blocks []model.Block, results []model.SubmissionResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Extracted answers", "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf("%d question(s), %d submission(s)", len(blocks), len(results)), "", "L", false)

	for i, b := range blocks {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.MultiCell(0, 10, tr(fmt.Sprintf("Question %d:\n%s", i+1, b.Text)), "1", "L", false)
		pdf.Ln(5)

		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 10, "Answers:", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		for _, r := range results {
			answer := ""
			if i < len(r.Alignments) {
				answer = r.Alignments[i].Answer
			}
			if r.Err != nil {
				answer = "(failed: " + r.Err.Error() + ")"
			}
			pdf.MultiCell(0, 8, tr(fmt.Sprintf("%s: %s", r.Name, answer)), "1", "L", false)
			pdf.Ln(1)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf %s: %w", path, err)
	}
	return nil
}
