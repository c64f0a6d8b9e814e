package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"-t", "hw.ipynb", "-i", "hw.zip"})
	require.NoError(t, err)

	assert.Equal(t, "hw.ipynb", cfg.Template)
	assert.Equal(t, "hw.zip", cfg.Input)
	assert.Equal(t, "answers.csv", cfg.Output)
	assert.InDelta(t, 0.05, cfg.Threshold, 1e-12)
	assert.Equal(t, -1, cfg.Context)
	assert.False(t, cfg.Exclusive)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestParseArgsOverrides(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"--template", "hw.md", "--input", "dir", "--threshold", "0.3", "--context", "3",
		"--exclusive", "-j", "2", "--pdf", "out.pdf", "-c", "--log-level", "debug",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.3, cfg.Threshold, 1e-12)
	assert.Equal(t, 3, cfg.Context)
	assert.True(t, cfg.Exclusive)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "out.pdf", cfg.PDF)
	assert.True(t, cfg.Copy)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing template", []string{"-i", "dir"}},
		{"missing input", []string{"-t", "hw.ipynb"}},
		{"threshold too high", []string{"-t", "hw.ipynb", "-i", "dir", "--threshold", "1.5"}},
		{"negative threshold", []string{"-t", "hw.ipynb", "-i", "dir", "--threshold=-0.1"}},
		{"nan threshold", []string{"-t", "hw.ipynb", "-i", "dir", "--threshold", "NaN"}},
		{"no workers", []string{"-t", "hw.ipynb", "-i", "dir", "-j", "0"}},
		{"unknown flag", []string{"--nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseArgsOutputDiffNeedsNoInput(t *testing.T) {
	cfg, err := ParseArgs([]string{"-t", "hw.ipynb", "--output-diff", "alice.ipynb"})
	require.NoError(t, err)
	assert.Equal(t, "alice.ipynb", cfg.OutputDiff)
}
