// Package nbanswer extracts the answers a submission author inserted into a
// copy of a template document.
package nbanswer

import (
	"fmt"

	"github.com/sokinpui/nbanswer/internal/align"
	"github.com/sokinpui/nbanswer/internal/differ"
	"github.com/sokinpui/nbanswer/internal/flatten"
	"github.com/sokinpui/nbanswer/internal/logger"
	"github.com/sokinpui/nbanswer/internal/parser"
	"github.com/sokinpui/nbanswer/internal/segment"
	"github.com/sokinpui/nbanswer/model"
)

// Config controls answer extraction.
type Config struct {
	// Threshold is the minimum similarity between a question and an
	// unchanged diff group. The default of 0.05 is very permissive and is
	// meant to be tuned per template.
	Threshold float64
	// Context is the number of unchanged lines kept around each change.
	// Negative keeps every aligned line.
	Context int
	// Exclusive prevents two questions from selecting the same diff group.
	Exclusive bool
}

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{Threshold: align.DefaultThreshold, Context: differ.FullContext}
}

func (c Config) validate() error {
	// Written this way round so that NaN fails too.
	if !(c.Threshold >= 0 && c.Threshold <= 1) {
		return fmt.Errorf("threshold must be between 0 and 1, got %g", c.Threshold)
	}
	return nil
}

// Result is the outcome of comparing one submission with the template.
type Result struct {
	Blocks     []model.Block
	Groups     []model.DiffGroup
	Alignments []model.Alignment
}

// Answers returns one answer per block, empty where nothing matched.
func (r Result) Answers() []string {
	answers := make([]string, len(r.Alignments))
	for i, a := range r.Alignments {
		answers[i] = a.Answer
	}
	return answers
}

// Extractor holds the read-only state derived from a template. It is safe
// for concurrent use by multiple goroutines.
type Extractor struct {
	cfg          Config
	templateText string
	blocks       []model.Block
	log          logger.Logger
}

// NewExtractor segments and flattens template once for many comparisons.
func NewExtractor(template model.Document, cfg Config) (*Extractor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		cfg:          cfg,
		templateText: flatten.Text(template),
		blocks:       segment.Blocks(template),
		log:          logger.GetDefault(),
	}, nil
}

// Blocks returns the template's question blocks.
func (e *Extractor) Blocks() []model.Block {
	return e.blocks
}

// Extract aligns the template's blocks with target.
func (e *Extractor) Extract(target model.Document) Result {
	groups := differ.Groups(e.templateText, flatten.Text(target), differ.Options{Context: e.cfg.Context})
	for i, g := range groups {
		e.log.Debug("diff group", "file", target.Path, "index", i+1, "category", g.Category, "lines", len(g.Lines))
	}

	alignments := align.Blocks(e.blocks, groups, align.Options{
		Threshold: e.cfg.Threshold,
		Exclusive: e.cfg.Exclusive,
		OnScore: func(block, group int, ratio float64) {
			e.log.Debug("similarity", "file", target.Path, "question", block+1,
				"group", group+1, "ratio", fmt.Sprintf("%.2f", ratio))
		},
	})
	for _, a := range alignments {
		if a.Matched() {
			e.log.Info("question matched", "file", target.Path, "question", a.BlockIndex+1,
				"group", a.GroupIndex+1, "ratio", fmt.Sprintf("%.2f", a.Similarity), "answer", preview(a.Answer))
		} else {
			e.log.Info("no matching group", "file", target.Path, "question", a.BlockIndex+1,
				"max_ratio", fmt.Sprintf("%.2f", a.Similarity))
		}
	}

	return Result{Blocks: e.blocks, Groups: groups, Alignments: alignments}
}

func preview(s string) string {
	const limit = 100
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// Extract compares target with template and returns the recovered answers.
func Extract(template, target model.Document, cfg Config) (Result, error) {
	e, err := NewExtractor(template, cfg)
	if err != nil {
		return Result{}, err
	}
	return e.Extract(target), nil
}

// ExtractFiles loads both documents from disk and extracts the answers.
func ExtractFiles(templatePath, targetPath string, cfg Config) (Result, error) {
	template, err := parser.Load(templatePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load template: %w", err)
	}
	target, err := parser.Load(targetPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load submission: %w", err)
	}
	return Extract(template, target, cfg)
}
