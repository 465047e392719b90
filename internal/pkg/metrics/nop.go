package metrics

import (
	"context"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// NopCollector — no-op реализация Collector.
// Используется когда метрики отключены (Config.Enabled = false).
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordEvent — no-op, ничего не делает.
func (c *NopCollector) RecordEvent(_ logging.Severity, _ bool) {}

// RecordSuppressed — no-op, ничего не делает.
func (c *NopCollector) RecordSuppressed(_ logging.Verdict) {}

// RecordBootstrap — no-op, ничего не делает.
func (c *NopCollector) RecordBootstrap(_ string, _ bool) {}

// Push — no-op, всегда возвращает nil.
func (c *NopCollector) Push(_ context.Context) error {
	return nil
}
