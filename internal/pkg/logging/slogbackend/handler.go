package slogbackend

import (
	"context"
	"log/slog"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// Имена атрибутов места вызова в записи лога.
const (
	AttrLogger = "logger"
	AttrMethod = "method"
	AttrError  = "error"
)

// callerHandler добавляет к записи место вызова, привязанное к context вызова
// через logging.WithCaller. Context живёт один вызов, поэтому атрибуты
// не переживают вызов и не пересекаются между горутинами.
type callerHandler struct {
	next slog.Handler
}

// newCallerHandler оборачивает next. Повторное оборачивание не выполняется.
func newCallerHandler(next slog.Handler) slog.Handler {
	if h, ok := next.(*callerHandler); ok {
		return h
	}
	return &callerHandler{next: next}
}

// Enabled делегирует решение обёрнутому handler-у.
func (h *callerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle добавляет атрибуты logger и method, если Caller есть в ctx.
func (h *callerHandler) Handle(ctx context.Context, r slog.Record) error {
	if c, ok := logging.CallerFromContext(ctx); ok {
		r = r.Clone()
		r.AddAttrs(
			slog.String(AttrLogger, c.Component),
			slog.String(AttrMethod, c.MethodName()),
		)
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs сохраняет обёртку для производного handler-а.
func (h *callerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &callerHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup сохраняет обёртку для производного handler-а.
func (h *callerHandler) WithGroup(name string) slog.Handler {
	return &callerHandler{next: h.next.WithGroup(name)}
}
