package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus logger
type Logger struct {
	*logrus.Logger
}

type Options struct {
	// Level is one of debug, info, warn or error. Anything else means info.
	Level string
	// JSON selects the JSON formatter; otherwise text is used.
	JSON   bool
	Output io.Writer
}

// New creates a logger tagged with the component name.
func New(component string, opts Options) *Logger {
	log := logrus.New()

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	log.SetOutput(opts.Output)
	log.SetLevel(ParseLevel(opts.Level))
	log.AddHook(componentHook(component))

	return &Logger{Logger: log}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return &Logger{Logger: log}
}

func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// WithUserID adds the acting user to the entry.
func (l *Logger) WithUserID(userID string) *logrus.Entry {
	return l.WithField("user_id", userID)
}

type componentHook string

func (h componentHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h componentHook) Fire(entry *logrus.Entry) error {
	if h != "" {
		if _, ok := entry.Data["component"]; !ok {
			entry.Data["component"] = string(h)
		}
	}
	return nil
}
