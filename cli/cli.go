package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Template    string
	Input       string
	Output      string
	PDF         string
	WorkDir     string
	OutputDiff  string
	Threshold   float64
	Context     int
	Exclusive   bool
	Workers     int
	Copy        bool
	NoAnimation bool
	LogLevel    string
	LogJSON     bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args into a Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("nbanswer", pflag.ContinueOnError)

	// Inputs
	flags.StringVarP(&cfg.Template, "template", "t", "", "Template notebook (.ipynb or .md) that defines the questions.")
	flags.StringVarP(&cfg.Input, "input", "i", "", "Directory or .zip archive holding the submissions.")
	flags.StringVar(&cfg.WorkDir, "work-dir", "unzipped_submissions", "Directory where archives are extracted.")

	// Outputs
	flags.StringVarP(&cfg.Output, "output", "o", "answers.csv", "CSV report path. Use '-' for stdout.")
	flags.StringVar(&cfg.PDF, "pdf", "", "Also write a PDF report to this path.")
	flags.BoolVarP(&cfg.Copy, "copy", "c", false, "Copy the CSV report to the clipboard.")
	flags.StringVar(&cfg.OutputDiff, "output-diff", "", "Print the unified diff between the template and this submission, then exit.")

	// Matching
	flags.Float64Var(&cfg.Threshold, "threshold", 0.05, "Minimum similarity for a question to match a diff group.")
	flags.IntVar(&cfg.Context, "context", -1, "Unchanged lines kept around each change; negative keeps all of them.")
	flags.BoolVar(&cfg.Exclusive, "exclusive", false, "Never let two questions take the same diff group.")
	flags.IntVarP(&cfg.Workers, "workers", "j", runtime.NumCPU(), "Number of submissions processed in parallel.")

	// Presentation
	flags.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the spinner and print plain progress.")
	flags.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error.")
	flags.BoolVar(&cfg.LogJSON, "log-json", false, "Emit logs as JSON.")

	flags.Usage = func() {
		fmt.Println("Usage: nbanswer -t template.ipynb -i submissions.zip [flags]")
		fmt.Println("\nExtract the answers typed into copies of a template notebook.")
		fmt.Println("\nExample: nbanswer -t hw4.ipynb -i hw4.zip -o hw4.csv --pdf hw4.pdf")
		fmt.Println("\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks flag combinations.
func (c *Config) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("error: --template is required")
	}
	if c.Input == "" && c.OutputDiff == "" {
		return fmt.Errorf("error: one of --input or --output-diff is required")
	}
	if !(c.Threshold >= 0 && c.Threshold <= 1) {
		return fmt.Errorf("error: --threshold must be between 0 and 1, got %g", c.Threshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("error: --workers must be at least 1")
	}
	return nil
}
