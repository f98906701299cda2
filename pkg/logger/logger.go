// Package logger builds the zap loggers used by dirsize.
package logger

import "go.uber.org/zap"

// New returns a zap logger writing to stderr. When debug is true it uses the
// development config (human-readable, debug level); otherwise the production
// config (JSON, info level).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
