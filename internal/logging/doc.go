// Package logging provides structured logging for nutsmith.
//
// This package wraps a zap logger with a process-wide instance and leveled
// convenience functions used by the CLI layer.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (classification results, fingerprints, scanner output)
//   - Info: Normal operations (config writes, service operations, commits)
//   - Warn: Non-fatal issues (failed scans, unreadable previous configs)
//   - Error: Fatal issues (startup failures, failed service operations)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device configured",
//	    zap.String("device", "rack-pdu-3"),
//	    zap.String("driver", "snmp-ups"),
//	)
//
// Engine packages take an injected *zap.Logger instead of calling the
// package-level functions; GetLogger hands out the shared instance for
// that wiring.
//
// # Configuration
//
// Logging is silent by default so the CLI output stays clean. Set the
// NUTSMITH_LOG_LEVEL environment variable (or pass a level to Initialize)
// to enable output:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
