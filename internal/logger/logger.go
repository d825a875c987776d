// Package logger provides the process-wide leveled logger.
package logger

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

const module = "dreamyvoice"

var logger = logging.MustGetLogger(module)

// InitLogger installs a formatted stderr backend filtered at the given level.
// Unknown level names fall back to INFO.
func InitLogger(level string) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:2006/01/02 15:04:05} %{level:.4s} - %{message}`,
	))

	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(ParseLevel(level), module)
	logger.SetBackend(leveled)
}

// ParseLevel maps a LOG_LEVEL value onto a go-logging level.
func ParseLevel(level string) logging.Level {
	parsed, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if err != nil {
		return logging.INFO
	}
	return parsed
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
