// Package printer assembles the selected files into the output stream
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Format selects how each file is written
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatPlain, FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("printer: unknown format %q (want plain, markdown or json)", name)
	}
}

// Printer handles output formatting and writing to the configured output destination
type Printer struct {
	output      io.Writer
	count       int64
	useColors   bool
	format      Format
	jsonStarted bool
	err         error
	header      *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output: os.Stdout,
		format: FormatPlain,
		header: color.New(color.FgCyan, color.Bold),
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored path headers
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	if enabled {
		p.header.EnableColor()
	} else {
		p.header.DisableColor()
	}
	return p
}

// WithFormat sets the output format. JSON and Markdown are never colored.
func (p *Printer) WithFormat(format Format) *Printer {
	p.format = format
	return p
}

// JSONFileEntry represents a file entry in JSON output
type JSONFileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// PrintFile writes one file's content preceded by a header naming its path.
// The first write error is kept and returned by every later call.
func (p *Printer) PrintFile(relativePath string, content []byte) error {
	if p.err != nil {
		return p.err
	}
	p.count++

	switch p.format {
	case FormatJSON:
		sep := ",\n"
		if !p.jsonStarted {
			sep = "[\n"
			p.jsonStarted = true
		}

		jsonData, err := json.MarshalIndent(JSONFileEntry{Path: relativePath, Content: string(content)}, "  ", "  ")
		if err != nil {
			p.err = fmt.Errorf("printer: marshal %s: %w", relativePath, err)
			return p.err
		}
		_, p.err = fmt.Fprintf(p.output, "%s  %s", sep, jsonData)
	case FormatMarkdown:
		_, p.err = fmt.Fprintf(p.output, "file: %s\n\n```\n%s\n```\n\n", relativePath, content)
	default:
		heading := relativePath + ":"
		if p.useColors {
			heading = p.header.Sprint(heading)
		}
		_, p.err = fmt.Fprintf(p.output, "%s\n\n%s\n\n", heading, content)
	}

	return p.err
}

// Finalize completes any pending operations (like closing the JSON array)
func (p *Printer) Finalize() error {
	if p.err != nil {
		return p.err
	}
	if p.format == FormatJSON {
		if p.jsonStarted {
			_, p.err = fmt.Fprint(p.output, "\n]\n")
		} else {
			_, p.err = fmt.Fprint(p.output, "[]\n")
		}
	}
	return p.err
}

// GetCount returns the number of files printed
func (p *Printer) GetCount() int64 {
	return p.count
}

// PrintList writes the selected paths under a heading. The heading says
// "would be read" in dry-run mode.
func PrintList(w io.Writer, paths []string, dryRun bool) error {
	heading := "Files read:"
	if dryRun {
		heading = "Files to be read:"
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
