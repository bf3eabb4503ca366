// Package logging provides structured logging for the Glint tools.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the discovery engine and control channel. Logging
// is silent by default so CLI output stays clean; set GLINT_LOG_LEVEL to
// enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (raw datagram dumps, reply payloads)
//   - Info: Normal operations (probes sent, bulbs found, commands issued)
//   - Warn: Non-fatal issues (replies without an id, decode failures)
//   - Error: Failures surfaced to the caller (socket errors, timeouts)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Bulb discovered",
//	    zap.String("id", "0x0000000007fb9200"),
//	    zap.String("model", "color"),
//	    zap.String("location", "yeelight://192.168.1.40:55443"),
//	)
//
// # Configuration
//
// Initialize logging at startup:
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
