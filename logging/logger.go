package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable before BootstrapLogger runs so packages and tests can log freely.
var Log = logrus.New()

func BootstrapLogger(level string) {
	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
		},
		Level:    logrus.InfoLevel,
		ExitFunc: os.Exit,
	}
	if parsed, err := logrus.ParseLevel(level); err == nil {
		Log.SetLevel(parsed)
	} else {
		Log.Warnf("unknown log level %q, falling back to info", level)
	}
	Log.SetReportCaller(true)
}
