// Package report renders suite results for people and machines.
package report

import (
	"fmt"
	"io"

	"digital.vasic.chinotto/pkg/suite"
)

// Reporter writes the results of one or more suite runs.
type Reporter interface {
	Write(w io.Writer, results []*suite.Result) error
}

// Format names a built-in reporter.
type Format string

const (
	FormatConsole  Format = "console"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// New returns the reporter for format.
func New(format Format) (Reporter, error) {
	switch format {
	case FormatConsole, "":
		return NewConsoleReporter(), nil
	case FormatJSON:
		return NewJSONReporter(true), nil
	case FormatMarkdown:
		return MarkdownReporter{}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}
