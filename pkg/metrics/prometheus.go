package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type checkKey struct {
	suite, status string
}

type stepKey struct {
	suite, step, result string
}

// Recorder implements RunMetrics in memory and renders the
// counters in the Prometheus text exposition format.
type Recorder struct {
	mu        sync.Mutex
	checks    map[checkKey]int
	steps     map[stepKey]int
	durations map[string][]time.Duration
	runTotal  int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		checks:    make(map[checkKey]int),
		steps:     make(map[stepKey]int),
		durations: make(map[string][]time.Duration),
	}
}

func (m *Recorder) RecordCheck(suite, status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[checkKey{suite, status}]++
	m.durations[suite] = append(m.durations[suite], duration)
}

func (m *Recorder) RecordStep(suite, step string, passed bool) {
	result := "fail"
	if passed {
		result = "pass"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[stepKey{suite, step, result}]++
}

func (m *Recorder) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

// CheckCount returns the count for a suite+status combination.
func (m *Recorder) CheckCount(suite, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks[checkKey{suite, status}]
}

// StepCount returns how often step passed or failed in suite.
func (m *Recorder) StepCount(suite, step string, passed bool) int {
	result := "fail"
	if passed {
		result = "pass"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps[stepKey{suite, step, result}]
}

// RunTotal returns the total number of runs.
func (m *Recorder) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// WriteText writes every metric to w, sorted by labels.
func (m *Recorder) WriteText(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sb strings.Builder

	sb.WriteString("# HELP chinotto_runs_total Suite runs.\n")
	sb.WriteString("# TYPE chinotto_runs_total counter\n")
	fmt.Fprintf(&sb, "chinotto_runs_total %d\n", m.runTotal)

	sb.WriteString("# HELP chinotto_checks_total Finished checks by status.\n")
	sb.WriteString("# TYPE chinotto_checks_total counter\n")
	checks := make([]checkKey, 0, len(m.checks))
	for k := range m.checks {
		checks = append(checks, k)
	}
	sort.Slice(checks, func(i, j int) bool {
		if checks[i].suite != checks[j].suite {
			return checks[i].suite < checks[j].suite
		}
		return checks[i].status < checks[j].status
	})
	for _, k := range checks {
		fmt.Fprintf(&sb, "chinotto_checks_total{suite=\"%s\",status=\"%s\"} %d\n",
			labelEscaper.Replace(k.suite), k.status, m.checks[k])
	}

	sb.WriteString("# HELP chinotto_steps_total Evaluated steps by assertion and result.\n")
	sb.WriteString("# TYPE chinotto_steps_total counter\n")
	steps := make([]stepKey, 0, len(m.steps))
	for k := range m.steps {
		steps = append(steps, k)
	}
	sort.Slice(steps, func(i, j int) bool {
		a, b := steps[i], steps[j]
		if a.suite != b.suite {
			return a.suite < b.suite
		}
		if a.step != b.step {
			return a.step < b.step
		}
		return a.result < b.result
	})
	for _, k := range steps {
		fmt.Fprintf(&sb, "chinotto_steps_total{suite=\"%s\",step=\"%s\",result=\"%s\"} %d\n",
			labelEscaper.Replace(k.suite), labelEscaper.Replace(k.step), k.result, m.steps[k])
	}

	sb.WriteString("# HELP chinotto_check_duration_seconds Check durations.\n")
	sb.WriteString("# TYPE chinotto_check_duration_seconds summary\n")
	suites := make([]string, 0, len(m.durations))
	for s := range m.durations {
		suites = append(suites, s)
	}
	sort.Strings(suites)
	for _, s := range suites {
		var total time.Duration
		for _, d := range m.durations[s] {
			total += d
		}
		label := labelEscaper.Replace(s)
		fmt.Fprintf(&sb, "chinotto_check_duration_seconds_sum{suite=\"%s\"} %g\n", label, total.Seconds())
		fmt.Fprintf(&sb, "chinotto_check_duration_seconds_count{suite=\"%s\"} %d\n", label, len(m.durations[s]))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
