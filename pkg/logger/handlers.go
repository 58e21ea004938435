package logger

import (
	"context"
	"io"
	"log/slog"
)

type (
	handleFunc func(context.Context, slog.Record) error
	middleware func(handleFunc) handleFunc
)

// chainHandlers runs every record through the middlewares before handing it to h.
type chainHandlers struct {
	h           slog.Handler
	middlewares []middleware
}

func newChainHandlers(handler slog.Handler, middlewares ...middleware) *chainHandlers {
	return &chainHandlers{
		h:           handler,
		middlewares: middlewares,
	}
}

func (c *chainHandlers) Enabled(ctx context.Context, lvl slog.Level) bool {
	return c.h.Enabled(ctx, lvl)
}

func (c *chainHandlers) Handle(ctx context.Context, rec slog.Record) error {
	h := c.h.Handle
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h(ctx, rec)
}

func (c *chainHandlers) WithGroup(group string) slog.Handler {
	return &chainHandlers{
		middlewares: c.middlewares,
		h:           c.h.WithGroup(group),
	}
}

func (c *chainHandlers) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &chainHandlers{
		middlewares: c.middlewares,
		h:           c.h.WithAttrs(attrs),
	}
}

// NewGCPHandler returns a JSON handler using Cloud Logging field names.
func NewGCPHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     opts.Level,
		ReplaceAttr: attrReplacerChain(
			GCPAttrReplacer,
			opts.ReplaceAttr,
		),
	})
}

// GCPAttrReplacer replaces the default attribute keys with the GCP logging attribute keys.
func GCPAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case MessageKey:
		attr.Key = "message"
	case SourceKey:
		attr.Key = "logging.googleapis.com/sourceLocation"
	case LevelKey:
		attr.Key = "severity"
		lvl, ok := attr.Value.Any().(slog.Level)
		if ok {
			attr.Value = slog.StringValue(gcpSeverityMapping(lvl))
		}
	}
	return attr
}

// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#logseverity
func gcpSeverityMapping(lvl slog.Level) string {
	switch {
	case lvl < slog.LevelInfo:
		return "DEBUG"
	case lvl < slog.LevelWarn:
		return "INFO"
	case lvl < slog.LevelError:
		return "WARNING"
	case lvl < LevelCritical:
		return "ERROR"
	case lvl < LevelPanic:
		return "CRITICAL"
	case lvl < LevelFatal:
		return "ALERT"
	default:
		return "EMERGENCY"
	}
}
