package launcher

import (
	"fmt"
	"time"

	"github.com/evalphobia/logrus_sentry"
	log "github.com/sirupsen/logrus"
)

// sentryTimeout bounds how long a log call waits on error reporting.
const sentryTimeout = 5 * time.Second

// logLevel maps verbosity 0 (fatal) .. 5 (trace) onto logrus levels.
func logLevel(verbosity int) log.Level {
	switch {
	case verbosity < 0:
		verbosity = 0
	case verbosity > 5:
		verbosity = 5
	}
	return log.Level(verbosity + 1)
}

func logFormatter(cfg LoggingConfig) (log.Formatter, error) {
	switch cfg.Format {
	case "", "text":
		return &log.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		}, nil
	case "json":
		return &log.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q (valid: text, json)", cfg.Format)
	}
}

// setupLogging configures the standard logger every package logs through.
func setupLogging(logger *log.Logger, cfg LoggingConfig) error {
	formatter, err := logFormatter(cfg)
	if err != nil {
		return err
	}
	logger.SetFormatter(formatter)
	logger.SetLevel(logLevel(cfg.Verbosity))

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []log.Level{
			log.PanicLevel,
			log.FatalLevel,
			log.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("sentry hook: %w", err)
		}
		hook.Timeout = sentryTimeout
		logger.AddHook(hook)
	}
	return nil
}
