// Package segment splits a template document into question blocks.
//
// Empty code units act as markers. Every run of units between markers (and
// before the first / after the last one) becomes one block, unless the run
// normalizes to nothing.
package segment

import (
	"strings"

	"github.com/sokinpui/nbanswer/internal/flatten"
	"github.com/sokinpui/nbanswer/internal/normalize"
	"github.com/sokinpui/nbanswer/model"
)

type scanState int

const (
	accumulating scanState = iota
	boundaryHit
)

type scanner struct {
	state  scanState
	run    []string
	blocks []model.Block
}

func (s *scanner) feed(unit model.ContentUnit, text string) {
	if unit.IsMarker() {
		s.closeRun()
		s.state = boundaryHit
		return
	}
	s.state = accumulating
	s.run = append(s.run, text)
}

// closeRun emits the pending run as a block. A run closed straight after a
// boundary is empty and yields nothing.
func (s *scanner) closeRun() {
	if s.state == boundaryHit && len(s.run) == 0 {
		return
	}
	text := normalize.Text(strings.Join(s.run, "\n"))
	s.run = nil
	if text == "" {
		return
	}
	s.blocks = append(s.blocks, model.Block{Index: len(s.blocks), Text: text})
}

// Blocks returns the question blocks of doc in document order.
func Blocks(doc model.Document) []model.Block {
	s := &scanner{state: accumulating}
	texts := flatten.UnitTexts(doc)
	for i, unit := range doc.Units {
		s.feed(unit, texts[i])
	}
	s.closeRun()
	return s.blocks
}
