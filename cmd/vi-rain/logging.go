package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-rain/parameter"
)

// Log location, variables so tests can redirect them
var (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
	maxLogSize  = int64(parameter.MaxLogSize)
)

// newLogger creates a logger with timestamp formatting
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setupLogging opens the debug log when enabled
// The terminal owns stdout and stderr while running, so without debug everything is discarded
// The returned file is nil unless a log file was opened
func setupLogging(debug bool) (*log.Logger, *os.File) {
	discard := log.New(io.Discard)
	if !debug {
		return discard, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return discard, nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		base := strings.TrimSuffix(logFileName, filepath.Ext(logFileName))
		rotated := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", base, time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return discard, nil
	}
	return newLogger(f, log.DebugLevel), f
}
