// Package diag provides the diagnostics sink used across the arbor pipeline.
// Components take a Sink as a parameter instead of calling a process-wide
// logger, so warn-and-continue behavior stays testable and silent by default.
package diag

import (
	"fmt"
	"log/slog"
)

// Sink receives non-fatal diagnostics from the interpreter and index.
type Sink interface {
	// Warnf reports a recoverable anomaly (unknown tag, dropped duplicate).
	Warnf(format string, args ...any)
	// Infof reports informational detail, typically only surfaced when
	// verbose diagnostics are requested.
	Infof(format string, args ...any)
}

// Nop discards all diagnostics. It is the default sink for library use.
type Nop struct{}

func (Nop) Warnf(string, ...any) {}
func (Nop) Infof(string, ...any) {}

// Slog adapts a *slog.Logger to the Sink interface.
type Slog struct {
	Logger *slog.Logger
}

// NewSlog returns a Sink writing to logger, tagged with the given component.
func NewSlog(logger *slog.Logger, component string) *Slog {
	return &Slog{Logger: logger.With("component", component)}
}

func (s *Slog) Warnf(format string, args ...any) {
	s.Logger.Warn(fmt.Sprintf(format, args...))
}

func (s *Slog) Infof(format string, args ...any) {
	s.Logger.Info(fmt.Sprintf(format, args...))
}

// Recorder collects diagnostics in memory for assertions in tests.
type Recorder struct {
	Warnings []string
	Infos    []string
}

func (r *Recorder) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Recorder) Infof(format string, args ...any) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}
