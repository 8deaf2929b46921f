package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the global logger instance
	Log *zap.Logger
)

// Init initializes the global logger with the given log level.
// Entries go to stderr because stdout carries the MCP protocol.
func Init(level string) error {
	logger, err := New(level, os.Stderr)
	if err != nil {
		return err
	}
	Log = logger
	return nil
}

// New builds a JSON logger writing to w at the given level.
func New(level string, w io.Writer) (*zap.Logger, error) {
	// Parse the log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.StacktraceKey = ""
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(zapLevel),
	)
	return zap.New(core).With(zap.String("service", "jira-simple-mcp")), nil
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if Log == nil {
		// Not initialized: fall back to info level on stderr
		logger, err := New("info", os.Stderr)
		if err != nil {
			panic(err)
		}
		Log = logger
	}
	return Log
}

// Sync flushes any buffered log entries
func Sync() error {
	if Log == nil {
		return nil
	}
	return Log.Sync()
}
