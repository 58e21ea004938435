// Package slogx holds the attribute constructors used across the program logs.
package slogx

import (
	"fmt"
	"log/slog"
)

// ErrorKey is the attribute key used for error values.
const ErrorKey = "error"

// Error returns an slog.Attr for an error value. A nil error yields an empty
// attribute, which handlers drop.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(ErrorKey, err)
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Stringer returns an slog.Attr for a fmt.Stringer value such as an account key.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// Int64 is used for unix timestamps and signed durations in seconds.
func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int64(key, int64(value))
}

// Uint64 is used for token amounts in raw units, slots and counters.
func Uint64(key string, v uint64) slog.Attr {
	return slog.Uint64(key, v)
}

func Bool(key string, v bool) slog.Attr {
	return slog.Bool(key, v)
}
