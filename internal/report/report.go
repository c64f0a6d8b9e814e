// Package report writes extracted answers in tabular and printable form.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/nbanswer/model"
)

// Header returns the wide table header: File, Question 1, Answer 1, ..., Error.
func Header(questions int) []string {
	header := make([]string, 0, 2*questions+2)
	header = append(header, "File")
	for i := 1; i <= questions; i++ {
		n := strconv.Itoa(i)
		header = append(header, "Question "+n, "Answer "+n)
	}
	return append(header, "Error")
}

// Row returns the wide table row of one submission.
func Row(blocks []model.Block, result model.SubmissionResult) []string {
	row := make([]string, 0, 2*len(blocks)+2)
	row = append(row, result.Name)
	answers := result.Answers()
	for i, b := range blocks {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		row = append(row, b.Text, answer)
	}
	errText := ""
	if result.Err != nil {
		errText = result.Err.Error()
	}
	return append(row, errText)
}

// WriteCSV writes one row per submission.
func WriteCSV(w io.Writer, blocks []model.Block, results []model.SubmissionResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(len(blocks))); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(Row(blocks, r)); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CopyCSV places the CSV report on the system clipboard.
func CopyCSV(blocks []model.Block, results []model.SubmissionResult) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, blocks, results); err != nil {
		return err
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
