package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.chinotto/pkg/suite"
)

// JSONReporter generates JSON reports from suite results.
type JSONReporter struct {
	pretty bool
	now    func() time.Time
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty, now: time.Now}
}

// jsonReport is the document written by JSONReporter.
type jsonReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     *Summary        `json:"summary"`
	Results     []*suite.Result `json:"results"`
}

// GenerateReport creates a JSON report for a single run.
func (r *JSONReporter) GenerateReport(result *suite.Result) ([]byte, error) {
	return r.marshal(result)
}

// GenerateSummary creates a JSON document covering every run.
func (r *JSONReporter) GenerateSummary(results []*suite.Result) ([]byte, error) {
	if results == nil {
		results = []*suite.Result{}
	}
	return r.marshal(jsonReport{
		GeneratedAt: r.now(),
		Summary:     BuildSummary(results),
		Results:     results,
	})
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Write writes the summary document followed by a newline.
func (r *JSONReporter) Write(w io.Writer, results []*suite.Result) error {
	data, err := r.GenerateSummary(results)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
