package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.chinotto/pkg/suite"
)

// jsonMarshal is swapped in tests.
var jsonMarshal = json.Marshal

// HistoricalEntry represents a single suite run in the
// historical log.
type HistoricalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Suite     string    `json:"suite"`
	Source    string    `json:"source,omitempty"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Errored   int       `json:"errored"`
	Duration  string    `json:"duration"`
}

// AppendToHistory adds an entry to the historical log stored
// at historyPath. Each entry is a single JSON line.
func AppendToHistory(historyPath string, result *suite.Result) error {
	passed, failed, errored := result.Counts()
	entry := HistoricalEntry{
		Timestamp: result.StartedAt,
		RunID:     result.RunID,
		Suite:     result.Suite,
		Source:    result.Source,
		Passed:    passed,
		Failed:    failed,
		Errored:   errored,
		Duration:  result.Duration.String(),
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
