package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"digital.vasic.chinotto"
	"digital.vasic.chinotto/pkg/env"
	"digital.vasic.chinotto/pkg/logging"
	"digital.vasic.chinotto/pkg/metrics"
	"digital.vasic.chinotto/pkg/report"
	"digital.vasic.chinotto/pkg/suite"
	"digital.vasic.chinotto/pkg/watch"
)

// EnvPrefix prefixes the environment variables the CLI reads.
const EnvPrefix = "CHINOTTO_"

type checkOptions struct {
	format    string
	logLevel  string
	logFormat string
	envFile   string
	history   string
	metrics   string
	parallel  int
	watch     bool
	noColor   bool
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <suite>...",
		Short: "Run assertion suites",
		Long: `Run the checks of one or more suite files (.yaml, .yml or .json).

Settings fall back to the environment when a flag is not given:
  CHINOTTO_FORMAT, CHINOTTO_LOG_LEVEL, CHINOTTO_LOG_FORMAT, CHINOTTO_NO_COLOR

Exit codes:
  0 all checks passed, 1 a check failed, 2 a suite could not be
  loaded, 3 configuration error, 64 usage error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "console", "Output format: console, json, markdown (env: CHINOTTO_FORMAT)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error (env: CHINOTTO_LOG_LEVEL)")
	f.StringVar(&opts.logFormat, "log-format", "console", "Log format: console, json (env: CHINOTTO_LOG_FORMAT)")
	f.StringVar(&opts.envFile, "env-file", "", "Path to .env file for variable expansion")
	f.StringVar(&opts.history, "history", "", "Append a JSON line per suite run to this file")
	f.StringVar(&opts.metrics, "metrics", "", "Write Prometheus text metrics to this file after every run")
	f.IntVarP(&opts.parallel, "parallel", "p", 1, "Number of suites to run at once")
	f.BoolVarP(&opts.watch, "watch", "w", false, "Re-run when a suite file or a checked path changes")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored output (env: CHINOTTO_NO_COLOR)")

	return cmd
}

// resolve fills options not set on the command line from vars.
func (o *checkOptions) resolve(cmd *cobra.Command, vars env.Loader) {
	f := cmd.Flags()
	if !f.Changed("format") {
		o.format = vars.GetWithDefault("FORMAT", o.format)
	}
	if !f.Changed("log-level") {
		o.logLevel = vars.GetWithDefault("LOG_LEVEL", o.logLevel)
	}
	if !f.Changed("log-format") {
		o.logFormat = vars.GetWithDefault("LOG_FORMAT", o.logFormat)
	}
	if !f.Changed("no-color") {
		o.noColor = vars.GetBool("NO_COLOR", o.noColor)
	}
}

func newLogger(w io.Writer, format, level string) (logging.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", "console":
		return logging.NewConsoleLoggerTo(w, lvl), nil
	case "json":
		l, err := logging.NewJSONLogger(logging.LoggerConfig{Output: w, Level: lvl})
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

func runCheck(cmd *cobra.Command, files []string, opts *checkOptions) error {
	vars := env.NewLoader(EnvPrefix)
	if opts.envFile != "" {
		if err := vars.Load(opts.envFile); err != nil {
			return exitError(ExitConfigError, err)
		}
	}
	opts.resolve(cmd, vars)

	if opts.noColor {
		prev := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = prev }()
	}

	logger, err := newLogger(cmd.ErrOrStderr(), opts.logFormat, opts.logLevel)
	if err != nil {
		return exitError(ExitConfigError, err)
	}
	defer func() { _ = logger.Close() }()

	reporter, err := report.New(report.Format(strings.ToLower(opts.format)))
	if err != nil {
		return exitError(ExitUsageError, err)
	}

	registry, err := chinotto.NewRegistry(logger)
	if err != nil {
		return exitError(ExitConfigError, err)
	}

	recorder := metrics.NewRecorder()
	c := &checker{
		files: files,
		runner: suite.NewRunner(registry,
			suite.WithLogger(logger),
			suite.WithEnv(vars),
			suite.WithMetrics(recorder),
		),
		reporter:    reporter,
		parallel:    opts.parallel,
		history:     opts.history,
		recorder:    recorder,
		metricsPath: opts.metrics,
		logger:      logger,
		out:         cmd.OutOrStdout(),
	}

	if !opts.watch {
		return c.run(cmd.Context())
	}
	return c.watch(cmd.Context(), cmd.ErrOrStderr())
}

// checker loads, runs and reports a fixed list of suite files.
type checker struct {
	files    []string
	runner   *suite.Runner
	reporter report.Reporter
	parallel int
	history  string
	logger   logging.Logger
	out      io.Writer

	recorder    *metrics.Recorder
	metricsPath string
}

func (c *checker) run(ctx context.Context) error {
	suites, err := suite.LoadAll(c.files...)
	if err != nil {
		return exitError(ExitParseError, err)
	}

	results, err := c.runner.RunAll(ctx, suites, c.parallel)
	if err != nil {
		return exitError(ExitCheckFailure, err)
	}

	failed := false
	for _, result := range results {
		if c.history != "" {
			if err := report.AppendToHistory(c.history, result); err != nil {
				c.logger.Warn("history not written", logging.ErrorField(err))
			}
		}
		failed = failed || !result.Passed()
	}

	if err := c.reporter.Write(c.out, results); err != nil {
		return exitError(ExitCheckFailure, err)
	}
	if c.metricsPath != "" {
		if err := c.writeMetrics(); err != nil {
			c.logger.Warn("metrics not written", logging.ErrorField(err))
		}
	}
	if failed {
		return exitError(ExitCheckFailure, nil)
	}
	return nil
}

func (c *checker) writeMetrics() error {
	f, err := os.Create(c.metricsPath)
	if err != nil {
		return err
	}
	if err := c.recorder.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// paths lists the suite files and the string subjects of every
// suite that currently loads.
func (c *checker) paths() []string {
	paths := append([]string(nil), c.files...)
	for _, file := range c.files {
		s, err := suite.Load(file)
		if err != nil {
			continue
		}
		paths = append(paths, c.runner.Paths(s)...)
	}
	return paths
}

func (c *checker) watch(ctx context.Context, errOut io.Writer) error {
	w := watch.New(c.paths(), watch.WithLogger(c.logger))

	err := w.Run(ctx, func(ctx context.Context, changed string) {
		if changed != "" {
			fmt.Fprintf(c.out, "\nFile changed: %s\nRe-running checks...\n\n", changed)
		}
		var exitErr *ExitError
		if err := c.run(ctx); errors.As(err, &exitErr) && exitErr.Err != nil && ctx.Err() == nil {
			fmt.Fprintf(errOut, "Error: %v\n", exitErr.Err)
		}
		fmt.Fprintf(c.out, "\nWatching for changes... (press Ctrl+C to stop)\n")
	})
	if err != nil {
		return exitError(ExitConfigError, err)
	}
	return nil
}
