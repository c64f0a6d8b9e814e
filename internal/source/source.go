package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sokinpui/nbanswer/internal/fs"
	"github.com/sokinpui/nbanswer/internal/logger"
	"github.com/sokinpui/nbanswer/internal/parser"
	"github.com/sokinpui/nbanswer/internal/ui"
)

// SourceProvider locates the submissions to compare against a template.
type SourceProvider struct {
	input    string
	template string
	workDir  string
}

// New creates a SourceProvider. input is a directory or a .zip archive;
// archives are extracted under workDir.
func New(input, template, workDir string) *SourceProvider {
	return &SourceProvider{input: input, template: template, workDir: workDir}
}

// Submissions returns the paths of all submission documents, sorted. The
// template itself is never returned, even when it sits next to the submissions.
func (sp *SourceProvider) Submissions() ([]string, error) {
	info, err := os.Stat(sp.input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", sp.input, err)
	}

	root := sp.input
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(sp.input), ".zip") {
			return nil, fmt.Errorf("input %s is neither a directory nor a .zip archive", sp.input)
		}
		ui.Header("--- Extracting %s ---", filepath.Base(sp.input))
		root, err = fs.ExtractZip(sp.input, sp.extractDir())
		if err != nil {
			return nil, err
		}
		logger.Info("extracted archive", "archive", sp.input, "dest", root)
	}

	templateName := filepath.Base(sp.template)
	files, err := fs.ListFiles(root, func(path string) bool {
		if !parser.Supported(path) {
			return false
		}
		if filepath.Base(path) == templateName {
			logger.Debug("skipping template copy", "file", path)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("no submissions found", "input", sp.input)
	}
	return files, nil
}

func (sp *SourceProvider) extractDir() string {
	name := strings.TrimSuffix(filepath.Base(sp.input), filepath.Ext(sp.input))
	return filepath.Join(sp.workDir, name)
}
