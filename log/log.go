package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level loggers. They discard output until Initialize is called so
// library code and tests can log unconditionally.
var (
	WarningLog = log.New(io.Discard, "", 0)
	InfoLog    = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var (
	logFileName = filepath.Join(os.TempDir(), "doorimport.log")
	logFile     *os.File
	logger      = zap.NewNop()
)

// Options controls where log output goes.
type Options struct {
	// Stderr mirrors warnings and errors to stderr. The TUI leaves this off
	// since stderr is the terminal it draws on.
	Stderr bool
	// Level is the minimum level written to the log file.
	Level zapcore.Level
}

// Initialize opens the log file and points the package loggers at it.
func Initialize(opts Options) {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file %s: %s\n", logFileName, err)
		return
	}
	logFile = f

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(f), opts.Level),
	}
	if opts.Stderr {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			zapcore.WarnLevel,
		))
	}
	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	InfoLog = stdLogger(logger, zapcore.InfoLevel)
	WarningLog = stdLogger(logger, zapcore.WarnLevel)
	ErrorLog = stdLogger(logger, zapcore.ErrorLevel)

	InitDebug()
}

func stdLogger(l *zap.Logger, level zapcore.Level) *log.Logger {
	std, err := zap.NewStdLogAt(l, level)
	if err != nil {
		// Only fails for invalid levels.
		return log.New(io.Discard, "", 0)
	}
	return std
}

// Logger returns the structured logger behind the package loggers.
func Logger() *zap.Logger {
	return logger
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}

// Close flushes and closes the log file.
func Close() {
	_ = logger.Sync()
	CloseDebug()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
