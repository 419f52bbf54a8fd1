// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human-friendly console format
// and a JSON format, plus an optional rotating log file.
//
// # Run Correlation
//
// Every invocation gets a run id. WithRun attaches it to the logger so all lines of one
// sync can be correlated in the log file, even across rotations.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console or json
//   - File: optional path of a JSON log file, rotated by lumberjack
//     (MaxSizeMB, MaxBackups, MaxAgeDays)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRun(log, logger.NewRunID())
//	log.Info("Sync started")
package logger
