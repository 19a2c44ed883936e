package logging

import (
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Init configures the package logger. Call once at startup.
func Init(level logrus.Level) {
	logger = logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// L returns the configured logger, initializing a default one if needed.
func L() *logrus.Logger {
	if logger == nil {
		Init(logrus.InfoLevel)
	}
	return logger
}
