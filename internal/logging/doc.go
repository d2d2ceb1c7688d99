// Package logging assembles the structured slog loggers used by the lrxy
// commands.
//
// It owns the console and JSON handlers and centralizes level plumbing so
// every command emits log lines of the same shape. Prefer these constructors
// over hand-rolled slog setup; NewNop exists for tests and wiring code that
// cannot fail.
package logging
