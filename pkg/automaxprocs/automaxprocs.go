package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	undo func()

	// -1 until Init succeeds
	autoMaxProcs = -1

	initialMaxProcs = Current()
)

// Init sets GOMAXPROCS from the container CPU quota before validator replicas are scheduled.
func Init() error {
	log := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.String("event", "set_gomaxprocs"),
		slogx.Int("prev_maxprocs", initialMaxProcs),
	)

	logf := func(format string, v ...any) {
		attrs := make([]slog.Attr, 0, 1)

		// undo calls the logger without arguments
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = Current()
			}
			if procs, ok := val.(int); ok {
				attrs = append(attrs, slogx.Int("set_maxprocs", procs))
			}
		}
		log.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
	}

	// no-op outside Linux containers with a CPU quota
	revert, err := maxprocs.Set(maxprocs.Logger(logf), maxprocs.Min(1))
	if err != nil {
		return errors.WithStack(err)
	}

	autoMaxProcs = Current()
	undo = revert
	return nil
}

// Undo restores GOMAXPROCS to its value before Init and returns it.
func Undo() int {
	if undo != nil {
		undo()
		return Current()
	}

	runtime.GOMAXPROCS(initialMaxProcs)
	return initialMaxProcs
}

// Current returns the current value of GOMAXPROCS.
func Current() int {
	return runtime.GOMAXPROCS(0)
}

// Value returns the value of GOMAXPROCS set by automaxprocs.
// returns -1 if `automaxprocs` is not initialized.
func Value() int {
	if autoMaxProcs <= 0 {
		return -1
	}
	return autoMaxProcs
}
