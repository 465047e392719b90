package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Ошибки валидации конфигурации трейсинга.
var (
	// ErrTracingEndpointRequired — endpoint обязателен при включённом трейсинге.
	ErrTracingEndpointRequired = errors.New("tracing: endpoint обязателен когда tracing включён")

	// ErrTracingServiceNameRequired — service name обязателен.
	ErrTracingServiceNameRequired = errors.New("tracing: service name обязателен")

	// ErrTracingTimeoutInvalid — timeout должен быть положительным.
	ErrTracingTimeoutInvalid = errors.New("tracing: timeout должен быть положительным")

	// ErrTracingEndpointInvalidFormat — endpoint не разбирается как URL с host.
	ErrTracingEndpointInvalidFormat = errors.New("tracing: endpoint должен быть валидным URL с host (например http://jaeger:4318)")

	// ErrTracingEndpointScheme — OTLP HTTP exporter понимает только http и https.
	ErrTracingEndpointScheme = errors.New("tracing: схема endpoint должна быть http или https")

	// ErrTracingSamplingRateInvalid — sampling rate вне диапазона [0.0, 1.0].
	ErrTracingSamplingRateInvalid = errors.New("tracing: sampling rate должен быть от 0.0 до 1.0")
)

// Значения по умолчанию.
const (
	DefaultServiceName  = "pquyquy-logging"
	DefaultEnvironment  = "production"
	DefaultTimeout      = 5 * time.Second
	DefaultSamplingRate = 1.0
)

// Config содержит настройки TracerProvider, которым bootstrap логирования
// оборачивает выбор backend-а в span logging.bootstrap.
type Config struct {
	Enabled bool

	// Endpoint — URL OTLP HTTP collector-а, например "http://otel-collector:4318".
	// Exporter получает только host:port, см. ExporterHost.
	Endpoint string

	ServiceName string

	// Version берётся из сборки (cmd/pquyquy-demo), а не из файла.
	Version string

	Environment string

	// Insecure — HTTP без TLS. Для endpoint со схемой http обычно true.
	Insecure bool

	Timeout time.Duration

	// SamplingRate — доля сэмплируемых bootstrap-ов (0.0 — ни одного, 1.0 — все).
	SamplingRate float64
}

// Validate проверяет конфигурацию. Выключенный трейсинг всегда валиден.
// Ошибки сравниваются через errors.Is().
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return ErrTracingEndpointRequired
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" {
		return ErrTracingEndpointInvalidFormat
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w, получено: %q", ErrTracingEndpointScheme, u.Scheme)
	}
	if c.ServiceName == "" {
		return ErrTracingServiceNameRequired
	}
	if c.Timeout <= 0 {
		return ErrTracingTimeoutInvalid
	}
	if c.SamplingRate < 0.0 || c.SamplingRate > 1.0 {
		return fmt.Errorf("%w, получено: %g", ErrTracingSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}

// ExporterHost возвращает host:port из Endpoint для otlptracehttp.WithEndpoint.
// Если Endpoint не разбирается — возвращает его как есть.
func (c *Config) ExporterHost() string {
	if u, err := url.Parse(c.Endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return c.Endpoint
}

// DefaultConfig возвращает конфигурацию по умолчанию (трейсинг выключен).
func DefaultConfig() Config {
	return Config{
		ServiceName:  DefaultServiceName,
		Environment:  DefaultEnvironment,
		Timeout:      DefaultTimeout,
		SamplingRate: DefaultSamplingRate,
	}
}
