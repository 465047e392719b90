package tracing

import (
	"context"
	"fmt"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
	"github.com/zaicro/pquyquy-logging/internal/pkg/urlutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Provider — TracerProvider вместе с функцией его завершения.
// Передаётся в bootstrap.Options.TracerProvider.
type Provider struct {
	trace.TracerProvider

	shutdown func(context.Context) error
}

// Shutdown экспортирует буферизированные span-ы и освобождает ресурсы.
// Для выключенного трейсинга ничего не делает.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}
	return p.shutdown(ctx)
}

// NewNopProvider возвращает Provider без экспорта: span-ы не записываются.
func NewNopProvider() *Provider {
	return &Provider{TracerProvider: noop.NewTracerProvider()}
}

// NewProvider создаёт и настраивает OTel TracerProvider.
// Если трейсинг выключен, возвращает NewNopProvider().
// При включённом трейсинге:
// 1. Создаёт OTLP HTTP exporter
// 2. Настраивает BatchSpanProcessor для асинхронного экспорта
// 3. Устанавливает resource attributes (service.name, version, environment)
// 4. Регистрирует TracerProvider глобально через otel.SetTracerProvider()
//
// logger обычно logging.Forward(registry): provider создаётся до bootstrap.
func NewProvider(cfg Config, logger logging.Logger) (*Provider, error) {
	caller := logging.CallerHere()

	if !cfg.Enabled {
		logger.Debug(caller, "трейсинг выключен, используется nop provider", nil)
		return NewNopProvider(), nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.ExporterHost()),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("tracing: создание OTLP exporter: %w", err)
	}

	tp, err := newSDKProvider(cfg, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}

	// Регистрируем глобально для библиотек, которые берут tracer из otel.
	// Компоненты этого модуля получают provider явно.
	otel.SetTracerProvider(tp)

	logger.Info(caller, fmt.Sprintf(
		"OpenTelemetry трейсинг инициализирован (endpoint=%s, service_name=%s, environment=%s, sampling_rate=%g)",
		urlutil.MaskURL(cfg.Endpoint), cfg.ServiceName, cfg.Environment, cfg.SamplingRate), nil)

	return &Provider{
		TracerProvider: tp,
		shutdown: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Warn(caller, "ошибка завершения tracer provider", err)
				return err
			}
			return nil
		},
	}, nil
}

// newSDKProvider собирает sdktrace.TracerProvider с resource и sampler из cfg.
// Способ экспорта задаётся processor (batcher в production, syncer в тестах).
func newSDKProvider(cfg Config, processor sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	), nil
}

// newResource создаёт resource с атрибутами сервиса.
// Используем NewSchemaless для избежания конфликта Schema URL
// между resource.Default() (SDK schema) и semconv v1.26.0.
func newResource(cfg Config) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
}

// ContextWithOTelTraceID создаёт контекст с OTel remote span context,
// содержащим указанный trace ID. Все span-ы, созданные из этого контекста
// (включая span bootstrap-а), используют тот же trace ID.
// Если traceIDHex невалидный — возвращает оригинальный контекст без изменений.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// newSampler создаёт sampler на основе SamplingRate.
// ParentBased wrapper:
//   - root spans (без parent): решение по TraceIDRatioBased
//   - remote parent (sampled): также TraceIDRatioBased, потому что
//     ContextWithOTelTraceID всегда ставит FlagsSampled на remote parent
//   - local parent: наследует решение parent span-а
func newSampler(rate float64) sdktrace.Sampler {
	return sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(rate),
		sdktrace.WithRemoteParentSampled(sdktrace.TraceIDRatioBased(rate)),
	)
}
