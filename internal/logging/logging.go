package logging

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type contextLoggerKey struct{}

var stdEntry = logrus.NewEntry(logrus.StandardLogger())

// Setup настраивает стандартный логгер logrus.
func Setup(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(lvl)
	return nil
}

// WithFields кладёт в контекст логгер с добавленными полями.
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	return context.WithValue(ctx, contextLoggerKey{}, GetLogger(ctx).WithFields(fields))
}

// GetLogger возвращает логгер из контекста или стандартный.
func GetLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(contextLoggerKey{}).(*logrus.Entry); ok {
		return logger
	}
	return stdEntry
}
