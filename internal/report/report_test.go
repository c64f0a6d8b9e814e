package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/nbanswer/model"
)

var (
	blocks = []model.Block{{Index: 0, Text: "task 1"}, {Index: 1, Text: "task 2"}}

	results = []model.SubmissionResult{
		{
			Name: "alice.ipynb",
			Alignments: []model.Alignment{
				{BlockIndex: 0, GroupIndex: 0, Similarity: 1, Answer: "sum(xs)"},
				{BlockIndex: 1, GroupIndex: model.NoGroup},
			},
		},
		{Name: "bob.ipynb", Err: errors.New("bob.ipynb: missing cells")},
	}
)

func TestHeader(t *testing.T) {
	assert.Equal(t, []string{"File", "Question 1", "Answer 1", "Question 2", "Answer 2", "Error"}, Header(2))
	assert.Equal(t, []string{"File", "Error"}, Header(0))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, blocks, results))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"alice.ipynb", "task 1", "sum(xs)", "task 2", "", ""}, records[1])
	assert.Equal(t, []string{"bob.ipynb", "task 1", "", "task 2", "", "bob.ipynb: missing cells"}, records[2])
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, WritePDF(path, blocks, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
