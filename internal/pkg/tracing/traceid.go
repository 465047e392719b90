// Package tracing настраивает OpenTelemetry для bootstrap-а логирования
// и связывает trace ID процесса с OTel span context.
//
// Trace ID — 32 hex-символа (16 байт), совместим с W3C Trace Context:
//
//	ctx, traceID := tracing.StartTrace(context.Background())
//	// span-ы из ctx (включая "logging.bootstrap") получают traceID
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// fallbackCounter делает fallback ID уникальными в пределах процесса.
var fallbackCounter atomic.Uint64

// GenerateTraceID возвращает случайный trace ID из crypto/rand.
// Если crypto/rand недоступен, ID строится из времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: %016x даёт ровно 16 символов для каждого uint64,
// счётчик начинается с 1, поэтому ID никогда не состоит из одних нулей.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano()) //nolint:gosec // знак не важен
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}

// traceIDKey — ключ trace ID в context.
type traceIDKey struct{}

// WithTraceID возвращает context с trace ID. Предыдущее значение перекрывается.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext извлекает trace ID из context.
// Возвращает пустую строку если trace ID не установлен или ctx == nil.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// StartTrace генерирует trace ID, сохраняет его в context и делает его
// trace ID для OTel span-ов, создаваемых из возвращённого context.
func StartTrace(ctx context.Context) (context.Context, string) {
	id := GenerateTraceID()
	ctx = WithTraceID(ctx, id)
	return ContextWithOTelTraceID(ctx, id), id
}
