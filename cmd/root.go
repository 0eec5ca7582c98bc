package main

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/perfdash/internal/config"
	"github.com/okian/perfdash/internal/domain/ingest"
	"github.com/okian/perfdash/internal/domain/scoring"
	"github.com/okian/perfdash/pkg/logger"
	"github.com/okian/perfdash/pkg/metrics"
	"github.com/spf13/cobra"
)

// cli carries global flags and the state built from them.
type cli struct {
	configPath  string
	logLevel    string
	metricsFile string
	jsonLogs    bool

	cfg *config.Config
	log logger.Logger
}

// execute runs one command line. The metrics textfile is written whether or
// not the command succeeds.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if c.cfg != nil && c.cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(c.cfg.MetricsFile); werr != nil {
			c.log.Error(ctx, "failed to write metrics", logger.String("path", c.cfg.MetricsFile), logger.Error(werr))
			if err == nil {
				err = werr
			}
		}
	}
	return err
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "perfdash",
		Short: "Employee performance dashboard",
		Long: `perfdash reads daily employee performance files (JSON arrays of
records), scores them and renders the dashboard: summary metrics,
per-employee rollups, a sorted and paged record table and trend series.
It also writes spreadsheet reports and maintains hand-entered record files.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	pf.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	pf.BoolVar(&c.jsonLogs, "log-json", false, "log as JSON lines")

	root.AddCommand(
		newViewCmd(c),
		newExportCmd(c),
		newEntryCmd(c),
		newGenerateCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(ctx, c.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.metricsFile != "" {
		cfg.MetricsFile = c.metricsFile
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(c.jsonLogs)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	c.cfg = cfg
	c.log = logger.Named(cmd.Name())
	return nil
}

func (c *cli) calculator() *scoring.Calculator {
	return scoring.NewCalculator(
		scoring.WithWeights(c.cfg.ScoreBaseWeight, c.cfg.ScoreQualityWeight, c.cfg.ScoreErrorWeight),
		scoring.WithMaxQuality(c.cfg.ScoreMaxQuality),
	)
}

func (c *cli) ingestor() *ingest.Ingestor {
	return ingest.New(
		ingest.WithCalculator(c.calculator()),
		ingest.WithConcurrency(c.cfg.IngestConcurrency),
		ingest.WithLogger(c.log),
	)
}
