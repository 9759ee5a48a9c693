package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mappages/internal/config"
	"git.home.luguber.info/inful/mappages/internal/generator"
	"git.home.luguber.info/inful/mappages/internal/logfields"
	"git.home.luguber.info/inful/mappages/internal/metrics"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" env:"MAPPAGES_CONFIG" help:"Configuration file path (default mappages.yaml, ignored when absent)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate map pages from the catalog (default command)"`
	Watch    WatchCmd    `cmd:"" help:"Generate map pages and regenerate whenever the catalog changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ConfigPath returns the config file to read and whether it must exist.
func (c *CLI) ConfigPath() (string, bool) {
	if c.Config == "" {
		return config.DefaultConfigFile, false
	}
	return c.Config, true
}

// RunFlags are the flags shared by generate and watch.
type RunFlags struct {
	Input       string `short:"i" env:"MAPPAGES_INPUT" help:"Map catalog YAML file (default triplea_maps.yaml)"`
	Output      string `short:"o" env:"MAPPAGES_OUTPUT" help:"Output directory for map pages (default _maps)"`
	OnDuplicate string `name:"on-duplicate" env:"MAPPAGES_ON_DUPLICATE" help:"What to do when two maps share a slug: overwrite or fail"`
	MetricsFile string `name:"metrics-file" env:"MAPPAGES_METRICS_FILE" help:"Write Prometheus metrics to this textfile after each run"`
}

// Overrides converts the flags to config overrides.
func (f RunFlags) Overrides() config.Overrides {
	return config.Overrides{
		Input:       f.Input,
		Output:      f.Output,
		OnDuplicate: f.OnDuplicate,
		MetricsFile: f.MetricsFile,
	}
}

// loadConfig reads the config file named on the command line and applies
// flag overrides.
func loadConfig(root *CLI, flags RunFlags) (*config.Config, error) {
	path, required := root.ConfigPath()
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(flags.Overrides()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runner executes generator runs and publishes their metrics.
type runner struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	prom     *metrics.PrometheusRecorder
}

func newRunner(global *Global, cfg *config.Config) *runner {
	logger := slog.Default()
	if global != nil && global.Logger != nil {
		logger = global.Logger
	}
	r := &runner{logger: logger, recorder: metrics.NoopRecorder{}}
	if cfg.Metrics.Textfile != "" {
		r.prom = metrics.NewPrometheusRecorder(prom.NewRegistry())
		r.recorder = r.prom
	}
	return r
}

func (r *runner) run(ctx context.Context, cfg *config.Config) (*generator.Result, error) {
	result, err := generator.Run(ctx, cfg,
		generator.WithLogger(r.logger),
		generator.WithRecorder(r.recorder))

	if r.prom != nil && cfg.Metrics.Textfile != "" {
		if werr := r.prom.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			r.logger.Warn("Failed to write metrics textfile",
				logfields.Path(cfg.Metrics.Textfile),
				logfields.Error(werr))
		}
	}
	if err == nil {
		r.logger.Info("Pages generated",
			logfields.RunID(result.RunID),
			logfields.Count(result.PagesWritten),
			slog.Int("records", result.RecordsRead),
			slog.Int("duplicates", len(result.Duplicates)),
			logfields.Path(cfg.Output.Directory),
			logfields.DurationMS(float64(result.Duration)/float64(time.Millisecond)))
	}
	return result, err
}
