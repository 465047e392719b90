package di

import (
	"context"
	"fmt"
	"time"

	"github.com/zaicro/pquyquy-logging/internal/bootstrap"
	"github.com/zaicro/pquyquy-logging/internal/config"
	"github.com/zaicro/pquyquy-logging/internal/constants"
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
	"github.com/zaicro/pquyquy-logging/internal/pkg/metrics"
	"github.com/zaicro/pquyquy-logging/internal/pkg/tracing"
)

// ProvideRegistry создаёт пустой реестр логгера.
// Один реестр на App: bootstrap устанавливает в него backend ровно один раз.
func ProvideRegistry() *logging.Registry {
	return logging.NewRegistry()
}

// ProvideTraceContext создаёт context с новым trace ID.
// Span bootstrap-а создаётся из этого context и получает тот же trace ID.
func ProvideTraceContext() context.Context {
	ctx, _ := tracing.StartTrace(context.Background())
	return ctx
}

// ProvideTraceID извлекает trace ID из context, созданного ProvideTraceContext.
func ProvideTraceID(ctx context.Context) string {
	return tracing.TraceIDFromContext(ctx)
}

// ProvideMetricsCollector создаёт Collector на основе секции metrics.
// Если cfg == nil или метрики выключены — NopCollector.
//
// Коллектор создаётся до bootstrap, поэтому логирует через logging.Forward:
// сообщения до установки backend-а отбрасываются.
func ProvideMetricsCollector(cfg *config.Config, reg *logging.Registry) (metrics.Collector, error) {
	if cfg == nil {
		return metrics.NewNopCollector(), nil
	}
	collector, err := metrics.NewCollector(cfg.Metrics.ToMetrics(), logging.Forward(reg))
	if err != nil {
		return nil, fmt.Errorf("создание коллектора метрик: %w", err)
	}
	return collector, nil
}

// tracerShutdownTimeout ограничивает сброс span-ов при завершении provider-а.
const tracerShutdownTimeout = 5 * time.Second

// ProvideTracerProvider создаёт OTel TracerProvider на основе секции tracing.
// Если cfg == nil или трейсинг выключен — nop provider.
//
// cleanup завершает provider. Wire вызывает его сам, если следующий
// провайдер (bootstrap) вернул ошибку.
func ProvideTracerProvider(cfg *config.Config, reg *logging.Registry) (*tracing.Provider, func(), error) {
	if cfg == nil {
		return tracing.NewNopProvider(), func() {}, nil
	}
	tracingCfg := cfg.Tracing.ToTracing()
	tracingCfg.Version = constants.Version

	provider, err := tracing.NewProvider(tracingCfg, logging.Forward(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("инициализация tracing: %w", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		_ = provider.Shutdown(ctx) //nolint:errcheck // provider сам логирует ошибку завершения
	}
	return provider, cleanup, nil
}

// ProvideLogger выполняет bootstrap: выбирает backend из bootstrap.Default
// (или явно заданный cfg.Logging.Backend), создаёт его и устанавливает в reg.
//
// Ошибка bootstrap не маскируется: без логгера приложение не запускается.
func ProvideLogger(
	ctx context.Context,
	cfg *config.Config,
	reg *logging.Registry,
	collector metrics.Collector,
	tp *tracing.Provider,
) (logging.Logger, error) {
	opts := bootstrap.Options{
		Registry:       reg,
		Collector:      collector,
		TracerProvider: tp,
	}
	if cfg != nil {
		opts.Backend = cfg.Logging.Backend
	}
	return bootstrap.Bootstrap(ctx, opts)
}
