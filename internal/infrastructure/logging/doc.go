// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON lines for log collectors
//   - Development: colored console output
//
// Lifecycle code attaches the host application and filesystem path to every
// entry so a failed install can be traced from the log alone.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.ForApp("excel").Info("manifest installed", zap.String("path", p))
package logging
