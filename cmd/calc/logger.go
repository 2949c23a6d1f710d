package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger creates the diagnostic logger. Results go to stdout; the logger
// only ever writes to w.
func newLogger(cfg *Config, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return log, nil
}
