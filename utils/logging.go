package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logrus logger from the Logging config section
// and returns the root logger.
func InitLogger() logrus.FieldLogger {
	logger := logrus.StandardLogger()

	if Config != nil {
		if Config.Logging.OutputStderr {
			logger.SetOutput(os.Stderr)
		}

		if Config.Logging.OutputLevel != "" {
			level, err := logrus.ParseLevel(Config.Logging.OutputLevel)
			if err != nil {
				logger.WithError(err).Warnf("invalid log level: %v", Config.Logging.OutputLevel)
			} else {
				logger.SetLevel(level)
			}
		}
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger
}
