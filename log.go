package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog routes logging to the file named by CLAWKIT_LOGFILE, or discards
// debug output otherwise so command output stays clean.
func setupLog() (func() error, error) {
	if logFile := os.Getenv("CLAWKIT_LOGFILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return f.Close, nil
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if os.Getenv("CLAWKIT_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	if !isTerminalOutput() {
		log.SetOutput(io.Discard)
	}
	return func() error { return nil }, nil
}
