package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
)

var _ migrate.Logger = (*migrateLogger)(nil)

// migrateLogger forwards golang-migrate output to the program logger.
type migrateLogger struct {
	log *slog.Logger
}

func newMigrateLogger(source string) *migrateLogger {
	return &migrateLogger{
		log: logger.With(slog.String("package", "migrate"), slog.String("source", source)),
	}
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Verbose reports whether debug logs are enabled.
func (l *migrateLogger) Verbose() bool {
	return l.log.Enabled(context.Background(), slog.LevelDebug)
}
