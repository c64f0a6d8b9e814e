// Package align matches template blocks against diff groups and harvests
// the inserted text that follows each match as the block's answer.
package align

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/nbanswer/model"
)

// DefaultThreshold is permissive on purpose: a question is usually a small
// fragment of a much larger unchanged run, so its ratio against that run is low.
const DefaultThreshold = 0.05

// Options controls block alignment.
type Options struct {
	// Threshold is the minimum similarity for a block to claim a group.
	Threshold float64
	// Exclusive stops later blocks from selecting a group an earlier block
	// already selected. Off by default: two blocks may share a group and
	// therefore the same answer.
	Exclusive bool
	// OnScore, when set, is called with every ratio computed between a block
	// and an unchanged group.
	OnScore func(blockIndex, groupIndex int, ratio float64)
}

// DefaultOptions returns the default alignment options.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Similarity returns the difflib ratio 2*M/T between a and b, computed on runes.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Blocks returns one alignment per block, in block order.
func Blocks(blocks []model.Block, groups []model.DiffGroup, opts Options) []model.Alignment {
	alignments := make([]model.Alignment, len(blocks))
	consumed := make(map[int]bool)

	for i, block := range blocks {
		a := Block(block, groups, opts, consumed)
		if opts.Exclusive && a.Matched() {
			consumed[a.GroupIndex] = true
		}
		alignments[i] = a
	}
	return alignments
}

// Block aligns a single block. Groups whose index is set in skip are not
// considered; opts.Exclusive is not consulted here.
func Block(block model.Block, groups []model.DiffGroup, opts Options, skip map[int]bool) model.Alignment {
	best, bestIdx := 0.0, model.NoGroup
	for idx, g := range groups {
		if g.Category != model.Unchanged || skip[idx] {
			continue
		}
		ratio := Similarity(block.Text, g.Text())
		if opts.OnScore != nil {
			opts.OnScore(block.Index, idx, ratio)
		}
		if ratio > best {
			best, bestIdx = ratio, idx
		}
	}

	a := model.Alignment{BlockIndex: block.Index, GroupIndex: model.NoGroup, Similarity: best}
	if bestIdx == model.NoGroup || best < opts.Threshold {
		return a
	}
	a.GroupIndex = bestIdx
	a.Answer = harvest(groups, bestIdx)
	return a
}

// harvest joins the lines of the inserted groups directly after groups[idx].
func harvest(groups []model.DiffGroup, idx int) string {
	var parts []string
	for next := idx + 1; next < len(groups) && groups[next].Category == model.Inserted; next++ {
		parts = append(parts, groups[next].Lines...)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
