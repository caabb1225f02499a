package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options struct - logging settings
type Options struct {
	Level      string
	Debug      bool
	Env        string
	File       string // Rotated log file, empty for stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init func - configures the package-level logrus logger.
// The returned closer releases the log file, if any.
func Init(opts Options) io.Closer {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if opts.Env == "" || strings.EqualFold(opts.Env, "local") {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	if opts.File == "" {
		logrus.SetOutput(os.Stdout)
		return nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    valueOr(opts.MaxSizeMB, 50),
		MaxBackups: valueOr(opts.MaxBackups, 5),
		MaxAge:     valueOr(opts.MaxAgeDays, 28),
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func valueOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
