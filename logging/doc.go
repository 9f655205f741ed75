// Package logging builds structured loggers on top of log/slog for the kefir
// command-line tool and for applications wiring kefir through Fx.
package logging
