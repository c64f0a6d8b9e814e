// Package parser loads template and submission files into documents.
package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sokinpui/nbanswer/model"
)

// ParseError reports a structurally invalid document.
type ParseError struct {
	Path string
	// Cell is the index of the offending cell, or -1 for document-level problems.
	Cell   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Cell >= 0 {
		where = fmt.Sprintf("%s: cell %d", e.Path, e.Cell)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ipynb", ".md", ".markdown":
		return true
	}
	return false
}

// Load reads a document from disk, choosing the format by extension.
func Load(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ipynb":
		return ParseNotebook(data, path)
	case ".md", ".markdown":
		return ParseMarkdown(data, path)
	default:
		return model.Document{}, &ParseError{Path: path, Cell: -1, Reason: "unsupported file type"}
	}
}

type notebookFile struct {
	Cells *[]notebookCell `json:"cells"`
}

type notebookCell struct {
	CellType *string          `json:"cell_type"`
	Source   *json.RawMessage `json:"source"`
}

// ParseNotebook decodes nbformat v4 JSON. Cell sources may be a string or a
// list of line strings.
func ParseNotebook(data []byte, path string) (model.Document, error) {
	var nb notebookFile
	if err := json.Unmarshal(data, &nb); err != nil {
		return model.Document{}, &ParseError{Path: path, Cell: -1, Reason: "invalid notebook JSON", Err: err}
	}
	if nb.Cells == nil {
		return model.Document{}, &ParseError{Path: path, Cell: -1, Reason: "missing cells"}
	}

	doc := model.Document{Path: path, Units: make([]model.ContentUnit, 0, len(*nb.Cells))}
	for i, cell := range *nb.Cells {
		unit, err := parseCell(cell)
		if err != nil {
			return model.Document{}, &ParseError{Path: path, Cell: i, Reason: err.Error()}
		}
		doc.Units = append(doc.Units, unit)
	}
	return doc, nil
}

func parseCell(cell notebookCell) (model.ContentUnit, error) {
	if cell.CellType == nil {
		return model.ContentUnit{}, fmt.Errorf("missing cell_type")
	}
	if cell.Source == nil {
		return model.ContentUnit{}, fmt.Errorf("missing source")
	}

	var kind model.Kind
	switch *cell.CellType {
	case "code":
		kind = model.KindCode
	case "markdown", "raw":
		kind = model.KindText
	default:
		return model.ContentUnit{}, fmt.Errorf("unknown cell_type %q", *cell.CellType)
	}

	raw, err := decodeSource(*cell.Source)
	if err != nil {
		return model.ContentUnit{}, err
	}
	return model.ContentUnit{Kind: kind, Raw: raw}, nil
}

func decodeSource(msg json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, nil
	}
	var lines []string
	if err := json.Unmarshal(msg, &lines); err != nil {
		return "", fmt.Errorf("source is neither a string nor a list of strings")
	}
	return strings.Join(lines, ""), nil
}
