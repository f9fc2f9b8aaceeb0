// Package report renders a completed validation run for humans and for
// machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esstools/essready/internal/validation"
)

// Formatter writes a run outcome to its output writer.
type Formatter interface {
	Format(outcome *validation.Outcome) error
}

// Options configures formatter construction.
type Options struct {
	// Writer is where output is written (defaults to os.Stdout).
	Writer io.Writer
	// NoColor disables styling in the text formatter.
	NoColor bool
}

// NewFormatter creates a formatter for the given format string.
func NewFormatter(format string, opts *Options) (Formatter, error) {
	if opts == nil {
		opts = &Options{Writer: os.Stdout}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case "json":
		return &JSONFormatter{w: opts.Writer}, nil
	case "yaml":
		return &YAMLFormatter{w: opts.Writer}, nil
	case "text", "":
		return &TextFormatter{w: opts.Writer, noColor: opts.NoColor}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

// JSONFormatter writes the outcome as indented JSON.
type JSONFormatter struct {
	w io.Writer
}

// Format writes the outcome as JSON.
func (f *JSONFormatter) Format(outcome *validation.Outcome) error {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome)
}

// YAMLFormatter writes the outcome as YAML.
type YAMLFormatter struct {
	w io.Writer
}

// Format writes the outcome as YAML.
func (f *YAMLFormatter) Format(outcome *validation.Outcome) error {
	encoder := yaml.NewEncoder(f.w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(outcome)
}

// TextFormatter writes the styled terminal report.
type TextFormatter struct {
	w       io.Writer
	noColor bool
}

// Format renders the outcome grouped by category with a summary footer.
func (f *TextFormatter) Format(outcome *validation.Outcome) error {
	_, err := io.WriteString(f.w, Render(outcome, f.noColor))
	return err
}

var (
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*YAMLFormatter)(nil)
	_ Formatter = (*TextFormatter)(nil)
)
