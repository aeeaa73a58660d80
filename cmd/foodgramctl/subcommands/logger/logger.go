// Package logger provides loggers for foodgramctl subcommand tasks.
package logger

import (
	"io"
	"log"
)

// Null returns a logger which writes nothing. For tests.
func Null() *log.Logger {
	return log.New(io.Discard, "", log.LstdFlags)
}

// Default returns the process-wide standard logger.
func Default() *log.Logger {
	return log.Default()
}
