package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_WriteText(t *testing.T) {
	m := NewRecorder()
	m.IncrementRunTotal()
	m.RecordCheck("b", StatusFailed, 500*time.Millisecond)
	m.RecordCheck("a", StatusPassed, 250*time.Millisecond)
	m.RecordCheck("a", StatusPassed, 250*time.Millisecond)
	m.RecordStep("a", "file", true)
	m.RecordStep(`say "hi"`, "file", false)

	var sb strings.Builder
	require.NoError(t, m.WriteText(&sb))

	want := `# HELP chinotto_runs_total Suite runs.
# TYPE chinotto_runs_total counter
chinotto_runs_total 1
# HELP chinotto_checks_total Finished checks by status.
# TYPE chinotto_checks_total counter
chinotto_checks_total{suite="a",status="passed"} 2
chinotto_checks_total{suite="b",status="failed"} 1
# HELP chinotto_steps_total Evaluated steps by assertion and result.
# TYPE chinotto_steps_total counter
chinotto_steps_total{suite="a",step="file",result="pass"} 1
chinotto_steps_total{suite="say \"hi\"",step="file",result="fail"} 1
# HELP chinotto_check_duration_seconds Check durations.
# TYPE chinotto_check_duration_seconds summary
chinotto_check_duration_seconds_sum{suite="a"} 0.5
chinotto_check_duration_seconds_count{suite="a"} 2
chinotto_check_duration_seconds_sum{suite="b"} 0.5
chinotto_check_duration_seconds_count{suite="b"} 1
`
	assert.Equal(t, want, sb.String())
}

func TestRecorder_Concurrent(t *testing.T) {
	m := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementRunTotal()
			m.RecordCheck("s", StatusPassed, time.Millisecond)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, m.RunTotal())
	assert.Equal(t, 8, m.CheckCount("s", StatusPassed))
}
