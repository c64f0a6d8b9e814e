package model

import "strings"

// Kind is the type of a content unit.
type Kind int

const (
	KindText Kind = iota
	KindCode
)

func (k Kind) String() string {
	if k == KindCode {
		return "code"
	}
	return "text"
}

// ContentUnit is one cell of a document.
type ContentUnit struct {
	Kind Kind
	Raw  string
}

// IsMarker reports whether the unit is an empty code unit used as a block boundary.
func (u ContentUnit) IsMarker() bool {
	return u.Kind == KindCode && strings.TrimSpace(u.Raw) == ""
}

// Document is an ordered sequence of content units read from a file.
type Document struct {
	Path  string
	Units []ContentUnit
}

// Block is one normalized question segmented from a template.
type Block struct {
	Index int
	Text  string
}

// Category classifies a diff line relative to the template.
type Category int

const (
	Unchanged Category = iota
	Inserted
	Removed
)

func (c Category) String() string {
	switch c {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Prefix returns the unified diff marker for the category.
func (c Category) Prefix() byte {
	switch c {
	case Inserted:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is a single classified line of a diff.
type DiffLine struct {
	Category Category
	Text     string
	// Separator marks a structural boundary (a hunk break). It carries no text.
	Separator bool
}

// DiffGroup is a maximal run of consecutive diff lines sharing a category.
type DiffGroup struct {
	Category Category
	Lines    []string
}

// Text returns the group's lines joined by newlines.
func (g DiffGroup) Text() string {
	return strings.Join(g.Lines, "\n")
}

// NoGroup is the group index of an alignment that matched nothing.
const NoGroup = -1

// Alignment is the result of matching one block against the diff groups.
type Alignment struct {
	BlockIndex int
	GroupIndex int
	Similarity float64
	Answer     string
}

// Matched reports whether the alignment selected a group.
func (a Alignment) Matched() bool {
	return a.GroupIndex != NoGroup
}

// SubmissionResult holds the extracted answers of one submission.
type SubmissionResult struct {
	Path       string
	Name       string
	Alignments []Alignment
	Err        error
}

// Answers returns the answer strings in block order.
func (r SubmissionResult) Answers() []string {
	answers := make([]string, len(r.Alignments))
	for i, a := range r.Alignments {
		answers[i] = a.Answer
	}
	return answers
}

// Summary holds the results of a batch run for display.
type Summary struct {
	Template  string
	Questions int
	Processed []string
	Failed    []string
	Outputs   []string
	Message   string
}
