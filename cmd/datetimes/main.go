package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/username/datetimes/internal/config"
	"github.com/username/datetimes/internal/localization"
	"github.com/username/datetimes/pkg/dateformat"
	"github.com/username/datetimes/pkg/relday"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zap.NewNop()

// app holds what every subcommand needs, built once per invocation
type app struct {
	cache      *dateformat.Cache
	translator relday.Translator
	labeler    *relday.Labeler
	registry   *prometheus.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var dumpMetrics bool
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "datetimes",
		Short:         "Calendar, clock and locale-pinned date formatting utilities",
		Long:          "Convert between civil dates and epoch days, times and minutes in day, compute ages and render dates with a pinned locale",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger = initFileLogger(cfg.Log.File, cfg.Log.GetLogLevel())
			} else {
				logger, err = initLogger(cfg.Log.GetLogLevel())
				if err != nil {
					return err
				}
			}

			return a.init(cfg)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync()
			if !dumpMetrics {
				return nil
			}
			return a.writeMetrics(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml, $HOME/.datetimes, /etc/datetimes)")
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "Print collected metrics to stderr after the command")

	rootCmd.AddCommand(
		epochDayCmd(),
		fromEpochDayCmd(),
		leapYearCmd(),
		minutesCmd(a),
		atMinutesCmd(a),
		millisCmd(a),
		fromMillisCmd(a),
		ageCmd(a),
		dayBoundsCmd(a),
		labelCmd(a),
		formatCmd(a),
		parseTimeCmd(a),
	)

	return rootCmd
}

func (a *app) init(cfg *config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.cache, err = dateformat.New(dateformat.Options{
		Locale:     cfg.Locale,
		Location:   loc,
		Logger:     logger,
		Registerer: a.registry,
	})
	if err != nil {
		return err
	}

	a.translator = localization.ForLocale(a.cache.Locale(), cfg.Labels)
	a.labeler = relday.New(a.cache, a.translator)

	logger.Debug("Configuration loaded",
		zap.String("locale", a.cache.Locale()),
		zap.String("time_zone", loc.String()))

	return nil
}

func (a *app) writeMetrics(cmd *cobra.Command) error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func initLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func initFileLogger(logFile string, level zapcore.Level) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)

	return zap.New(core)
}
