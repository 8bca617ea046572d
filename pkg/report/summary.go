package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.chinotto/pkg/suite"
)

// Summary aggregates the checks of several runs.
type Summary struct {
	Suites        int           `json:"suites"`
	Checks        int           `json:"checks"`
	Passed        int           `json:"passed"`
	Failed        int           `json:"failed"`
	Errored       int           `json:"errored"`
	TotalDuration time.Duration `json:"total_duration"`
	PassRate      float64       `json:"pass_rate"`
}

// OK reports whether no check failed or errored.
func (s *Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// BuildSummary counts the checks of every result.
func BuildSummary(results []*suite.Result) *Summary {
	s := &Summary{}
	for _, r := range results {
		passed, failed, errored := r.Counts()
		s.Suites++
		s.Checks += len(r.Checks)
		s.Passed += passed
		s.Failed += failed
		s.Errored += errored
		s.TotalDuration += r.Duration
	}
	if s.Checks > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Checks)
	}
	return s
}

// MarkdownReporter renders results as Markdown tables.
type MarkdownReporter struct{}

// Write renders one table per suite and a statistics table.
func (MarkdownReporter) Write(w io.Writer, results []*suite.Result) error {
	_, err := io.WriteString(w, generateMarkdown(results))
	return err
}

func generateMarkdown(results []*suite.Result) string {
	var sb strings.Builder
	summary := BuildSummary(results)

	sb.WriteString("# Assertion Summary\n\n")

	for _, r := range results {
		fmt.Fprintf(&sb, "## %s\n\n", suiteTitle(r))
		fmt.Fprintf(&sb, "**Run ID:** %s\n\n", r.RunID)
		sb.WriteString("| Check | Status | Duration | Message |\n")
		sb.WriteString("|-------|--------|----------|---------|\n")
		for _, c := range r.Checks {
			fmt.Fprintf(&sb, "| %s | %s | %v | %s |\n",
				escapeCell(c.Name), status(c), c.Duration, escapeCell(c.Message))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Suites | %d |\n", summary.Suites)
	fmt.Fprintf(&sb, "| Checks | %d |\n", summary.Checks)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.Passed)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.Failed)
	fmt.Fprintf(&sb, "| Errored | %d |\n", summary.Errored)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}

func suiteTitle(r *suite.Result) string {
	switch {
	case r.Suite != "":
		return r.Suite
	case r.Source != "":
		return r.Source
	}
	return "suite"
}

func status(c suite.CheckResult) string {
	switch {
	case c.Passed:
		return "PASSED"
	case c.Usage:
		return "ERROR"
	}
	return "FAILED"
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
