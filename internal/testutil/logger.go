// Package testutil provides shared test helpers for PlantMatch packages:
// in-memory stores, a controllable clock, plant fixtures and loggers.
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Logger returns a debug-level logger that writes through t.Log, so output
// only shows up for failing or verbose tests.
func Logger(t testing.TB) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
}
