package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/nbanswer/model"
)

func text(s string) model.ContentUnit { return model.ContentUnit{Kind: model.KindText, Raw: s} }
func code(s string) model.ContentUnit { return model.ContentUnit{Kind: model.KindCode, Raw: s} }

func texts(blocks []model.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text
	}
	return out
}

func TestBlocksAdjacentMarkers(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		text("A"), code(""), text("B"), code(""), code(""), text("C"),
	}}

	blocks := Blocks(doc)

	// Three blocks, not "a", "c": "B" is a non-empty run closed by a marker,
	// so it is a question of its own. Only the empty run between the two
	// adjacent markers is dropped.
	assert.Equal(t, []string{"a", "b", "c"}, texts(blocks))
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
	}
}

func TestBlocksAdjacentMarkersNothingBetween(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		text("A"), code(""), code(""), text("C"),
	}}

	assert.Equal(t, []string{"a", "c"}, texts(Blocks(doc)))
}

func TestBlocksJoinsRunMembers(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		text("## Task 1\n"),
		text("Write a function."),
		code("# starter code"),
		code("  \n"),
		text("## Task 2"),
	}}

	blocks := Blocks(doc)

	require.Len(t, blocks, 2)
	assert.Equal(t, "## task 1\nwrite a function.\n# starter code", blocks[0].Text)
	assert.Equal(t, "## task 2", blocks[1].Text)
}

func TestBlocksNoMarkers(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{text("One"), code("x = 1")}}

	assert.Equal(t, []string{"one\nx = 1"}, texts(Blocks(doc)))
}

func TestBlocksEmpty(t *testing.T) {
	assert.Empty(t, Blocks(model.Document{}))
	assert.Empty(t, Blocks(model.Document{Units: []model.ContentUnit{code(""), code(" ")}}))
}

func TestBlocksDropsImageOnlyRuns(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		text("![diagram](figure.png)"), code(""), text("Question"), code(""),
	}}

	assert.Equal(t, []string{"question"}, texts(Blocks(doc)))
}

func TestBlocksEmptyTextUnitIsNotMarker(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{text("A"), text(""), text("B")}}

	assert.Equal(t, []string{"a\n\nb"}, texts(Blocks(doc)))
}

func TestBlocksTrimsUnitText(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		text("  Intro  \n"), text("\n\tDetails\t"), code(""), text(" \n"), text("Next"),
	}}

	// A whitespace-only unit still joins its run as an empty line.
	assert.Equal(t, []string{"intro\ndetails", "next"}, texts(Blocks(doc)))
}
