// Package logger configures the process-wide logrus logger and carries
// request-scoped fields through a context.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Options controls how New builds a logger.
type Options struct {
	// Level is a logrus level name: "debug", "info", "warn", "error".
	// Empty means "warn".
	Level string

	// JSON switches to the JSON formatter.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	mu  sync.RWMutex
	std = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// New builds a logger from Options.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	level := logrus.WarnLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	l.SetLevel(level)

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	return l, nil
}

// SetDefault replaces the logger returned by Default and WithContext.
func SetDefault(l *logrus.Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

// Default returns the process-wide logger.
func Default() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

type contextKey struct{}

// Into returns a context carrying fields in addition to any already present.
func Into(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	if existing, ok := ctx.Value(contextKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, contextKey{}, merged)
}

// WithContext returns a log entry carrying the fields stored in ctx.
func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(Default())
	if ctx == nil {
		return entry
	}
	if fields, ok := ctx.Value(contextKey{}).(logrus.Fields); ok {
		return entry.WithFields(fields)
	}
	return entry
}
