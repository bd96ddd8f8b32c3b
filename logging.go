/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"io"

	"github.com/rs/zerolog"
)

const logDate string = `2006-01-02T15:04:05.000-07:00`

func newLogger(cfg *Config, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: logDate,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// logf writes a debug line, so it only shows with --verbose.
func logf(cfg *Config, format string, args ...any) {
	cfg.log.Debug().Msgf(format, args...)
}
