package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/QuickCooking_Go/internal/config"
	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// SetupLogger initializes the process logger. Output always goes to stdout;
// when cfg.LogDir is set a timestamped file in that directory receives a copy
// and old files beyond the retention count are removed.
// Returns the log file handle (nil without LogDir; caller must close).
func SetupLogger(cfg *config.Config) (*os.File, error) {
	return setupLogger(cfg, os.Stdout)
}

func setupLogger(cfg *config.Config, stdout io.Writer) (*os.File, error) {
	var (
		w       = stdout
		logFile *os.File
	)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}

		cleanupLogs(cfg.LogDir)

		timestamp := time.Now().Format(LogFileTimestampFormat)
		logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

		f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
		}
		logFile = f
		w = io.MultiWriter(stdout, logFile)
	}

	// Source locations only in dev
	addSource := !cfg.IsProduction() && strings.EqualFold(cfg.LogLevel, "debug")

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)
	logger.InitLoggerWithWriter(loggerConfig, w)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"log_dir", cfg.LogDir,
		"game_config", cfg.GameConfigPath,
		"catalog", cfg.CatalogPath,
		"session_cache_size", cfg.SessionCacheSize,
		"session_ttl", cfg.SessionTTL,
		"auto_tick_interval", cfg.AutoTickInterval)

	return logFile, nil
}

// cleanupLogs removes old log files, keeping only the most recent ones.
// Names carry a sortable timestamp, so name order is age order.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	if len(logFiles) < LogFileRetentionLimit {
		return
	}

	sort.Strings(logFiles)
	toDelete := len(logFiles) - LogFileRetentionCount
	for _, name := range logFiles[:toDelete] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", LogMsgFailedDeleteOldLog, name, err)
		}
	}
}
