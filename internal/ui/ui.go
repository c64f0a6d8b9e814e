package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sokinpui/nbanswer/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// --- Summaries ---

func PrintRunSummary(summary model.Summary) {
	Header("\n--- Run Summary ---")

	if summary.Message != "" {
		Info(summary.Message)
	}
	if summary.Template != "" {
		Info("Template %s: %d question(s)", summary.Template, summary.Questions)
	}
	if len(summary.Processed) == 0 && len(summary.Failed) == 0 {
		Info("No submissions were processed.")
		return
	}

	if len(summary.Processed) > 0 {
		Success("Extracted answers from %d submission(s):", len(summary.Processed))
		for _, f := range summary.Processed {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
	}
	if len(summary.Failed) > 0 {
		Error("Failed to process %d submission(s):", len(summary.Failed))
		for _, f := range summary.Failed {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
	}
	if len(summary.Outputs) > 0 {
		Success("Wrote %d report(s):", len(summary.Outputs))
		for _, f := range summary.Outputs {
			Path("- %s", f)
		}
	}
}

// --- Progress Bar ---

type ProgressBar struct {
	total   int
	prefix  string
	current int
}

func NewProgressBar(total int, prefix string) *ProgressBar {
	return &ProgressBar{total: total, prefix: prefix}
}

func (p *ProgressBar) Start() {
	p.draw()
}

// Set moves the bar to current.
func (p *ProgressBar) Set(current int) {
	p.current = current
	p.draw()
}

func (p *ProgressBar) Finish() {
	fmt.Fprintln(os.Stderr)
}

func (p *ProgressBar) draw() {
	if p.total == 0 {
		return
	}
	const barLength = 40
	percent := float64(p.current) / float64(p.total)
	filledLength := int(percent * barLength)
	bar := strings.Repeat("█", filledLength) + strings.Repeat("-", barLength-filledLength)

	percentStr := fmt.Sprintf("%.1f%%", percent*100)
	countStr := fmt.Sprintf("[%d/%d]", p.current, p.total)

	fmt.Fprintf(os.Stderr, "\r%s |%s| %s %s", p.prefix, bar, countStr, percentStr)
}
