package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetLogging sets log using in this application.
// An unknown level falls back to info.
func SetLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stdout)
}
