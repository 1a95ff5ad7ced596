package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/tidrapport/internal/calendar"
	"github.com/username/tidrapport/internal/config"
	"github.com/username/tidrapport/internal/source"
	"github.com/username/tidrapport/internal/timesheet"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	noColor    bool
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tidrapport",
		Short: "Monthly time report",
		Long:  "Browse logged hours on a month calendar with holidays, period totals and per-client breakdowns",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger("info")
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.GetLevel())
				if err != nil {
					initLogger(cfg.Log.GetLevel())
					logger.Warn("Failed to open log file, logging to stderr",
						zap.String("path", cfg.Log.File), zap.Error(err))
				}
			} else {
				initLogger(cfg.Log.GetLevel())
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(holidaysCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// initializeService wires the configured source and calendar. The returned
// cleanup releases the source and must be called once the command is done.
func initializeService(showWeekends *bool) (*timesheet.Service, func(), error) {
	loc, err := cfg.View.Location()
	if err != nil {
		return nil, nil, err
	}

	provider, err := initializeCalendar(loc)
	if err != nil {
		return nil, nil, err
	}

	src, err := initializeSource(loc)
	if err != nil {
		return nil, nil, err
	}

	opts := timesheet.Options{
		ShowWeekends: cfg.View.ShowWeekends,
		Location:     loc,
	}
	if showWeekends != nil {
		opts.ShowWeekends = *showWeekends
	}

	cleanup := func() { closeSource(src) }
	return timesheet.NewService(src, provider, opts, logger), cleanup, nil
}

func closeSource(src timesheet.Source) {
	closer, ok := src.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("Failed to close data source", zap.Error(err))
	}
}

func initializeSource(loc *time.Location) (timesheet.Source, error) {
	switch cfg.Data.GetType() {
	case config.DataSQLite:
		return source.NewSQLite(cfg.Data.File, loc, logger)
	default:
		src := source.NewFile(cfg.Data.File, loc, logger)
		if err := src.Load(); err != nil {
			return nil, err
		}
		return src, nil
	}
}

func initializeCalendar(loc *time.Location) (calendar.Provider, error) {
	calType := cfg.Calendar.GetType()

	switch calType {
	case config.CalendarSwedish:
		logger.Info("Using computed Swedish holiday calendar")
		return calendar.NewSwedishCalendar(loc), nil

	case config.CalendarFile, config.CalendarICS:
		logger.Info("Using holiday file", zap.String("type", calType), zap.String("path", cfg.Calendar.File))
		return loadFileCalendar(cfg.Calendar.File, loc)

	case config.CalendarHTTP:
		logger.Info("Using public holiday API",
			zap.String("country", cfg.Calendar.Country),
			zap.Duration("cache_ttl", cfg.Calendar.GetCacheTTL()))
		primary := calendar.NewHTTPCalendar(
			cfg.Calendar.APIURL,
			cfg.Calendar.Country,
			cfg.Calendar.GetCacheTTL(),
			loc,
			logger,
		)

		var fallback calendar.Provider
		switch {
		case cfg.Calendar.File != "":
			fileCal, err := loadFileCalendar(cfg.Calendar.File, loc)
			if err != nil {
				logger.Warn("Failed to load fallback calendar, continuing with API only", zap.Error(err))
			} else {
				fallback = fileCal
			}
		case strings.EqualFold(cfg.Calendar.Country, "SE"):
			fallback = calendar.NewSwedishCalendar(loc)
		}

		if fallback == nil {
			return primary, nil
		}
		return calendar.NewCompositeCalendar(primary, fallback, logger), nil

	default:
		return nil, fmt.Errorf("unknown calendar type: %s", calType)
	}
}

// loadFileCalendar picks the parser by extension: .ics is iCalendar,
// anything else the plain "YYYY-MM-DD name" list
func loadFileCalendar(path string, loc *time.Location) (calendar.Provider, error) {
	if strings.EqualFold(filepath.Ext(path), ".ics") {
		ics := calendar.NewICSCalendar(path, loc, logger)
		if err := ics.Load(); err != nil {
			return nil, err
		}
		return ics, nil
	}

	fileCal := calendar.NewFileCalendar(path, loc, logger)
	if err := fileCal.Load(); err != nil {
		return nil, err
	}
	return fileCal, nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// lumberjack opens lazily, so surface a bad path before the first write
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	_ = f.Close()

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
		parseLevel(level),
	)

	return zap.New(core), nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
