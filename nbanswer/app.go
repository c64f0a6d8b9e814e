package nbanswer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sokinpui/nbanswer/cli"
	"github.com/sokinpui/nbanswer/internal/differ"
	"github.com/sokinpui/nbanswer/internal/flatten"
	"github.com/sokinpui/nbanswer/internal/fs"
	"github.com/sokinpui/nbanswer/internal/logger"
	"github.com/sokinpui/nbanswer/internal/parser"
	"github.com/sokinpui/nbanswer/internal/report"
	"github.com/sokinpui/nbanswer/internal/source"
	"github.com/sokinpui/nbanswer/model"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App orchestrates a batch run: one template, many submissions.
type App struct {
	cfg              *cli.Config
	sourceProvider   *source.SourceProvider
	progressCallback ProgressUpdate
	stdout           io.Writer
	log              logger.Logger
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// Batch is the outcome of processing every submission.
type Batch struct {
	Blocks  []model.Block
	Results []model.SubmissionResult
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg:            cfg,
		sourceProvider: source.New(cfg.Input, cfg.Template, cfg.WorkDir),
		stdout:         os.Stdout,
		log:            logger.GetDefault(),
	}, nil
}

// SetProgressCallback sets a function to be called for progress updates.
// It may be called from several goroutines.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SetOutput redirects what the app prints to stdout.
func (a *App) SetOutput(w io.Writer) {
	a.stdout = w
}

func (a *App) extractConfig() Config {
	return Config{Threshold: a.cfg.Threshold, Context: a.cfg.Context, Exclusive: a.cfg.Exclusive}
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute(ctx context.Context) (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	if a.cfg.OutputDiff != "" {
		return a.printDiff()
	}
	return a.processSubmissions(ctx)
}

// printDiff writes the unified diff between the template and one submission.
func (a *App) printDiff() (model.Summary, error) {
	template, err := parser.Load(a.cfg.Template)
	if err != nil {
		return model.Summary{}, err
	}
	target, err := parser.Load(a.cfg.OutputDiff)
	if err != nil {
		return model.Summary{}, err
	}

	out, err := differ.Unified(flatten.Text(template), flatten.Text(target),
		filepath.Base(a.cfg.Template), filepath.Base(a.cfg.OutputDiff), a.cfg.Context)
	if err != nil {
		return model.Summary{}, err
	}
	fmt.Fprint(a.stdout, out)

	inserted, removed := 0, 0
	for _, g := range differ.Merge(differ.Coalesce(differ.ParseUnified(out))) {
		switch g.Category {
		case model.Inserted:
			inserted += len(g.Lines)
		case model.Removed:
			removed += len(g.Lines)
		}
	}
	name := filepath.Base(a.cfg.OutputDiff)
	return model.Summary{
		Message: fmt.Sprintf("Printed diff for %s: %d line(s) inserted, %d removed.", name, inserted, removed),
	}, nil
}

// processSubmissions runs the batch and writes the reports.
func (a *App) processSubmissions(ctx context.Context) (model.Summary, error) {
	batch, err := a.Run(ctx)
	if err != nil {
		return model.Summary{}, err
	}

	summary := model.Summary{Template: filepath.Base(a.cfg.Template), Questions: len(batch.Blocks)}
	for _, r := range batch.Results {
		if r.Err != nil {
			summary.Failed = append(summary.Failed, r.Name)
		} else {
			summary.Processed = append(summary.Processed, r.Name)
		}
	}
	if len(batch.Results) == 0 {
		summary.Message = "No submissions found. Nothing to do."
		return summary, nil
	}

	outputs, err := a.writeReports(batch)
	summary.Outputs = outputs
	return summary, err
}

// Run loads the template once and extracts answers from every submission.
// A submission that fails is recorded in its result; the others continue.
func (a *App) Run(ctx context.Context) (Batch, error) {
	template, err := parser.Load(a.cfg.Template)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to load template: %w", err)
	}
	extractor, err := NewExtractor(template, a.extractConfig())
	if err != nil {
		return Batch{}, err
	}
	a.log.Info("template segmented", "file", a.cfg.Template, "questions", len(extractor.Blocks()))

	paths, err := a.sourceProvider.Submissions()
	if err != nil {
		return Batch{}, err
	}

	results := make([]model.SubmissionResult, len(paths))
	total := len(paths)
	var done atomic.Int32
	if a.progressCallback != nil {
		a.progressCallback(0, total)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.processOne(extractor, path)
			if a.progressCallback != nil {
				a.progressCallback(int(done.Add(1)), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}

	return Batch{Blocks: extractor.Blocks(), Results: results}, nil
}

func (a *App) processOne(extractor *Extractor, path string) (result model.SubmissionResult) {
	result = model.SubmissionResult{Path: path, Name: filepath.Base(path)}
	defer func() {
		if r := recover(); r != nil {
			result.Err = &DetailedError{Err: fmt.Errorf("internal panic: %v", r), Stack: debug.Stack()}
		}
	}()

	doc, err := parser.Load(path)
	if err != nil {
		a.log.Warn("skipping submission", "file", path, "err", err)
		result.Err = err
		return result
	}
	result.Alignments = extractor.Extract(doc).Alignments
	return result
}

func (a *App) writeReports(batch Batch) ([]string, error) {
	var outputs []string

	if a.cfg.Output == "-" {
		if err := report.WriteCSV(a.stdout, batch.Blocks, batch.Results); err != nil {
			return outputs, err
		}
	} else if a.cfg.Output != "" {
		if err := writeCSVFile(a.cfg.Output, batch); err != nil {
			return outputs, err
		}
		outputs = append(outputs, a.cfg.Output)
	}

	if a.cfg.PDF != "" {
		if err := fs.EnsureParentDir(a.cfg.PDF); err != nil {
			return outputs, err
		}
		if err := report.WritePDF(a.cfg.PDF, batch.Blocks, batch.Results); err != nil {
			return outputs, err
		}
		outputs = append(outputs, a.cfg.PDF)
	}

	if a.cfg.Copy {
		if err := report.CopyCSV(batch.Blocks, batch.Results); err != nil {
			// The files are already written; a missing clipboard is not fatal.
			a.log.Warn("could not copy report", "err", err)
		}
	}
	return outputs, nil
}

func writeCSVFile(path string, batch Batch) error {
	if err := fs.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteCSV(f, batch.Blocks, batch.Results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
