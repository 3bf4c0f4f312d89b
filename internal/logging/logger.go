package logging

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides optional verbose logging and lightweight timing helpers.
// The zero value discards everything.
type Logger struct {
	zl      *zap.Logger
	Verbose bool
}

// New writes console-encoded entries to writer. When logFile is not empty
// entries are additionally appended there as JSON, regardless of verbosity.
func New(writer io.Writer, verbose bool, logFile string) (Logger, func(), error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(writer), level),
	}

	closeFn := func() {}
	if logFile != "" {
		sink, closeSink, err := zap.Open(logFile)
		if err != nil {
			return Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = closeSink
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.DebugLevel))
	}

	zl := zap.New(zapcore.NewTee(cores...))
	return Logger{zl: zl, Verbose: verbose}, func() {
		_ = zl.Sync()
		closeFn()
	}, nil
}

// FromZap wraps an existing zap logger, mostly for tests using zaptest.
func FromZap(zl *zap.Logger, verbose bool) Logger {
	return Logger{zl: zl, Verbose: verbose}
}

func (l Logger) Zap() *zap.Logger {
	if l.zl == nil {
		return zap.NewNop()
	}
	return l.zl
}

func (l Logger) Infof(format string, args ...any) {
	l.Zap().Info(fmt.Sprintf(format, args...))
}

func (l Logger) Warnf(format string, args ...any) {
	l.Zap().Warn(fmt.Sprintf(format, args...))
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Zap().Debug(fmt.Sprintf(format, args...))
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Zap().Debug(label, zap.Duration("took", time.Since(start).Round(time.Millisecond)))
	}
}
