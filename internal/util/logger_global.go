package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	initOnce     sync.Once
)

// InitLogger wires the process-wide logger. The first call wins: the play
// command initializes it before taking over the terminal, so any later
// attempt (inspect path, tests) is a no-op.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	initOnce.Do(func() {
		globalLogger = NewLogger(logLevel, logFile, debugToConsole)
	})
}

// Package-level helpers so components don't thread a logger through every
// constructor. All are safe before InitLogger runs: the entry is dropped.

func LogInfo(msg string) {
	if globalLogger != nil {
		globalLogger.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}
