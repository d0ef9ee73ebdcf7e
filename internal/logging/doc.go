// Package logging assembles the structured slog loggers used across
// lettermgt.
//
// It owns the console and JSON handlers, level parsing, and the optional
// tee into the configured log directory, and exposes a no-op logger for
// tests and wiring code that cannot fail. Prefer these constructors over
// hand-rolled slog setup so every component emits records with the same
// shape and routing.
package logging
