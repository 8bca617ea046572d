package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"digital.vasic.chinotto/pkg/suite"
)

// ConsoleReporter prints one line per check, failure messages
// and diffs, then a totals line.
type ConsoleReporter struct {
	pass  *color.Color
	fail  *color.Color
	warn  *color.Color
	faint *color.Color
	title *color.Color
}

// NewConsoleReporter creates a console reporter. Colour follows
// color.NoColor.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		pass:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		warn:  color.New(color.FgYellow),
		faint: color.New(color.Faint),
		title: color.New(color.Bold),
	}
}

func (r *ConsoleReporter) Write(w io.Writer, results []*suite.Result) error {
	var sb strings.Builder

	for _, res := range results {
		sb.WriteString(r.title.Sprint(suiteTitle(res)))
		if res.Suite != "" && res.Source != "" {
			sb.WriteString(r.faint.Sprintf(" (%s)", res.Source))
		}
		sb.WriteString("\n")

		for _, c := range res.Checks {
			switch {
			case c.Passed:
				fmt.Fprintf(&sb, "  %s %s\n", r.pass.Sprint("✓"), c.Name)
			case c.Usage:
				fmt.Fprintf(&sb, "  %s %s\n", r.warn.Sprint("!"), c.Name)
			default:
				fmt.Fprintf(&sb, "  %s %s\n", r.fail.Sprint("✗"), c.Name)
			}
			if c.Message != "" {
				sb.WriteString(indent(c.Message, "      "))
			}
			if c.Diff != "" {
				sb.WriteString(r.faint.Sprint(indent(c.Diff, "      ")))
			}
		}
		sb.WriteString("\n")
	}

	s := BuildSummary(results)
	totals := fmt.Sprintf("%d checks: %d passed, %d failed, %d errored (%v)",
		s.Checks, s.Passed, s.Failed, s.Errored, s.TotalDuration)
	if s.OK() {
		sb.WriteString(r.pass.Sprint(totals))
	} else {
		sb.WriteString(r.fail.Sprint(totals))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func indent(text, prefix string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		sb.WriteString(prefix + line + "\n")
	}
	return sb.String()
}
