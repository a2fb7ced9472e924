package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It's usable before Init is called (logging at info level as text to stderr), so
// packages and tests can log without setting anything up.
var Log = logrus.New()

// Init configures the global logger from the environment. It should be called once when the program starts.
//
// LOG_LEVEL sets the level ("debug", "info", "warn", ...), defaulting to "info".
// LOG_FORMAT set to "json" writes JSON lines; anything else writes human-readable text.
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure sets the global logger's level, format, and output directly. An unknown level falls back to info.
func Configure(logLevel, logFormat string, out io.Writer) {

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(logFormat) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(out)

}
