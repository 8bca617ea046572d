package suite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/env"
	"digital.vasic.chinotto/pkg/logging"
	"digital.vasic.chinotto/pkg/metrics"
)

// StepResult is the outcome of one step. Steps after the first
// failure in a check are skipped.
type StepResult struct {
	Name    string `json:"name"`
	Args    []any  `json:"args,omitempty"`
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped,omitempty"`
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string        `json:"name"`
	Subject  any           `json:"subject"`
	Negated  bool          `json:"negated,omitempty"`
	Steps    []StepResult  `json:"steps"`
	Passed   bool          `json:"passed"`
	Error    error         `json:"-"`
	Message  string        `json:"message,omitempty"`
	Diff     string        `json:"diff,omitempty"`
	Usage    bool          `json:"usage_error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Result is the outcome of running one suite.
type Result struct {
	RunID     string        `json:"run_id"`
	Suite     string        `json:"suite"`
	Source    string        `json:"source,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Checks    []CheckResult `json:"checks"`
}

// Passed reports whether every check passed.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Counts returns how many checks passed, failed an assertion and
// misused one.
func (r *Result) Counts() (passed, failed, errored int) {
	for _, c := range r.Checks {
		switch {
		case c.Passed:
			passed++
		case c.Usage:
			errored++
		default:
			failed++
		}
	}
	return passed, failed, errored
}

// Runner evaluates suites against an assertion registry.
type Runner struct {
	registry *assertion.Registry
	logger   logging.Logger
	vars     env.Loader
	metrics  metrics.RunMetrics
	now      func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l logging.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEnv expands $VAR and ${VAR} in string subjects and
// arguments using vars.
func WithEnv(vars env.Loader) RunnerOption {
	return func(r *Runner) {
		r.vars = vars
	}
}

// WithMetrics records runs, checks and steps in m.
func WithMetrics(m metrics.RunMetrics) RunnerOption {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewRunner creates a runner over registry.
func NewRunner(registry *assertion.Registry, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: registry,
		logger:   logging.NullLogger{},
		metrics:  metrics.NoopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates every check of s in order. When ctx is cancelled
// it returns the checks finished so far together with ctx.Err().
func (r *Runner) Run(ctx context.Context, s *Suite) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		Suite:     s.Name,
		Source:    s.Source,
		StartedAt: r.now(),
		Checks:    make([]CheckResult, 0, len(s.Checks)),
	}
	logger := r.logger.WithFields(
		logging.StringField("run_id", result.RunID),
		logging.StringField("suite", s.Name),
	)
	logger.Debug("suite started", logging.IntField("checks", len(s.Checks)))
	r.metrics.IncrementRunTotal()

	for _, c := range s.Checks {
		if err := ctx.Err(); err != nil {
			result.Duration = r.now().Sub(result.StartedAt)
			return result, err
		}

		cr := r.runCheck(s.Name, c)
		if cr.Passed {
			logger.Debug("check passed", logging.StringField("check", cr.Name))
		} else {
			logger.Debug("check failed",
				logging.StringField("check", cr.Name),
				logging.ErrorField(cr.Error),
			)
		}
		result.Checks = append(result.Checks, cr)
	}

	result.Duration = r.now().Sub(result.StartedAt)
	passed, failed, errored := result.Counts()
	logger.Info("suite finished",
		logging.IntField("passed", passed),
		logging.IntField("failed", failed),
		logging.IntField("errored", errored),
	)
	return result, nil
}

func (r *Runner) runCheck(suiteName string, c Check) CheckResult {
	start := r.now()
	subject := r.expand(c.Subject)

	a := r.registry.Expect(subject)
	if c.Not {
		a.Not()
	}
	if c.Any {
		a.Any()
	}

	cr := CheckResult{
		Name:    c.Label(),
		Subject: subject,
		Negated: c.Not,
		Steps:   make([]StepResult, 0, len(c.Steps)),
	}
	for _, step := range c.Steps {
		var args []any
		for _, arg := range step.Args {
			args = append(args, r.expand(arg))
		}
		sr := StepResult{Name: step.Name, Args: args}

		if a.Err() != nil {
			sr.Skipped = true
			cr.Steps = append(cr.Steps, sr)
			continue
		}
		r.apply(a, step.Name, args)
		sr.Passed = a.Err() == nil
		r.metrics.RecordStep(suiteName, step.Name, sr.Passed)
		cr.Steps = append(cr.Steps, sr)
	}

	cr.Duration = r.now().Sub(start)
	cr.Error = a.Err()
	cr.Passed = cr.Error == nil
	if cr.Error != nil {
		cr.Message = cr.Error.Error()
		cr.Usage = assertion.IsUsageError(cr.Error)
		var ae *assertion.AssertionError
		if errors.As(cr.Error, &ae) {
			cr.Diff = ae.Diff()
		}
	}

	status := metrics.StatusPassed
	switch {
	case cr.Usage:
		status = metrics.StatusErrored
	case !cr.Passed:
		status = metrics.StatusFailed
	}
	r.metrics.RecordCheck(suiteName, status, cr.Duration)
	return cr
}

// apply invokes a step as a property or a method. Arguments
// given to a property surface as a usage error.
func (r *Runner) apply(a *assertion.Assertion, name string, args []any) {
	if r.registry.Kind(name) == assertion.KindMethod || len(args) > 0 {
		a.Call(name, args...)
		return
	}
	a.Prop(name)
}

// expand resolves a leading ~ in strings, and environment
// references when WithEnv is set. Other values pass through.
func (r *Runner) expand(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if r.vars != nil {
		s = os.Expand(s, r.vars.Get)
	}
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[1:])
		}
	}
	return s
}

// Paths returns the string subjects of s after expansion, in
// check order and without duplicates.
func (r *Runner) Paths(s *Suite) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, c := range s.Checks {
		p, ok := r.expand(c.Subject).(string)
		if !ok || p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}
