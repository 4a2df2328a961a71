package main

import (
	service "github.com/okian/braincap/internal/app"
	"github.com/okian/braincap/internal/config"
	"github.com/okian/braincap/internal/domain/advice"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
	"github.com/okian/braincap/pkg/logger"
	"github.com/okian/braincap/pkg/metrics"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath      string
	logLevel        string
	format          string
	out             string
	metricsTextfile string
}

// cli holds what every subcommand needs once the root has set it up.
type cli struct {
	flags   rootFlags
	cfg     *config.Config
	svc     *service.Service
	metrics *metrics.Manager
	log     logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "braincap",
		Short:         "Score Brain Capital assessments and produce recommendations",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.exportMetrics(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "YAML config file (default: $"+config.EnvConfigFile+")")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	pf.StringVar(&c.flags.format, "format", formatJSON, "Output format: json, yaml or md")
	pf.StringVar(&c.flags.out, "out", "", "Output file path (default: stdout)")
	pf.StringVar(&c.flags.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the command")

	root.AddCommand(
		newAssessCmd(c),
		newBatchCmd(c),
		newTestsCmd(c),
		newAdviseCmd(c),
		newBenchmarkCmd(c),
		newRulesCmd(c),
		newSampleCmd(c),
	)
	return root
}

// setup loads configuration and builds the logger, engines and service.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	switch c.flags.format {
	case formatJSON, formatYAML, formatMarkdown:
	default:
		return exitError(exitUsage, "unknown format: %s", c.flags.format)
	}

	cfg, err := config.Load(ctx, c.flags.configPath)
	if err != nil {
		return exitError(exitUsage, "failed to load config: %v", err)
	}
	if c.flags.logLevel != "" {
		cfg.LogLevel = c.flags.logLevel
	}
	if c.flags.metricsTextfile != "" {
		cfg.MetricsTextfile = c.flags.metricsTextfile
	}
	c.cfg = cfg

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(cfg.LogFormat == config.LogFormatJSON)); err != nil {
		return exitError(exitUsage, "failed to initialize logging: %v", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return exitError(exitUsage, "invalid log level: %v", err)
	}
	c.log = logger.Named("cli")

	var scorerOpts []scoring.Option
	if cfg.TablesFile != "" {
		t, err := scoring.LoadTablesFile(cfg.TablesFile)
		if err != nil {
			return exitError(exitUsage, "failed to load tables: %v", err)
		}
		scorerOpts = append(scorerOpts, scoring.WithTables(t))
	}
	var adviceOpts []advice.Option
	if cfg.RulesFile != "" {
		t, err := advice.LoadFile(cfg.RulesFile)
		if err != nil {
			return exitError(exitUsage, "failed to load rules: %v", err)
		}
		adviceOpts = append(adviceOpts, advice.WithTable(t))
	}

	c.metrics = metrics.NewManager(metrics.WithNamespace(cfg.MetricsNamespace))
	c.svc = service.New(
		service.WithLogger(logger.Named("service")),
		service.WithScorer(scoring.NewScorer(scorerOpts...)),
		service.WithAdviceEngine(advice.NewEngine(adviceOpts...)),
		service.WithMetrics(c.metrics),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithDefaultLanguage(model.ParseLanguage(cfg.DefaultLanguage)),
	)
	c.log.Debug(ctx, "configured",
		logger.String("command", cmd.Name()),
		logger.Int("workers", cfg.WorkerCount),
		logger.String("default_language", cfg.DefaultLanguage),
		logger.Bool("custom_rules", cfg.RulesFile != ""),
		logger.Bool("custom_tables", cfg.TablesFile != ""),
	)
	return nil
}

func (c *cli) exportMetrics(cmd *cobra.Command) error {
	if c.cfg == nil || c.cfg.MetricsTextfile == "" {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.cfg.MetricsTextfile); err != nil {
		return exitError(exitOutput, "failed to write metrics: %v", err)
	}
	c.log.Debug(cmd.Context(), "metrics written", logger.String("path", c.cfg.MetricsTextfile))
	return nil
}
