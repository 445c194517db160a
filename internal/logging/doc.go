// Package logging assembles structured slog loggers and formatting helpers used
// across the podcasts CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes helpers for component loggers and warnings that carry
// an event type, a hint, and the user-facing impact. A per-invocation run id
// can be threaded through context so log files from separate runs stay
// distinguishable.
package logging
