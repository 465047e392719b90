package metrics

import (
	"context"
	"fmt"
	"os"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
	"github.com/zaicro/pquyquy-logging/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Значения label outcome для events_total.
const (
	outcomeEmitted  = "emitted"
	outcomeDisabled = "disabled"
)

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	// Метрики
	events     *prometheus.CounterVec
	suppressed *prometheus.CounterVec
	bootstrap  *prometheus.CounterVec

	// Instance label (hostname)
	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики (с префиксом Config.Namespace):
//   - log_events_total{severity,outcome} (counter)
//   - log_suppressed_total{reason} (counter)
//   - bootstrap_total{backend,status} (counter)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Namespace == "" {
		config.Namespace = DefaultConfig().Namespace
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn(logging.CallerOf[PrometheusCollector]("NewPrometheusCollector"),
				"не удалось получить hostname для metrics instance label, используется 'unknown'", err)
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "log_events_total",
			Help:      "Log calls that reached the severity gate, by outcome",
		},
		[]string{"severity", "outcome"},
	)

	suppressed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "log_suppressed_total",
			Help:      "Log calls dropped before the severity gate (filtered or empty)",
		},
		[]string{"reason"},
	)

	bootstrap := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "bootstrap_total",
			Help:      "Logger bootstrap attempts by selected backend and status",
		},
		[]string{"backend", "status"},
	)

	// Используем Register вместо MustRegister для избежания panic.
	// Ошибка возможна только при дублировании имён метрик в одном registry.
	collectors := []prometheus.Collector{events, suppressed, bootstrap}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:     config,
		logger:     logger,
		registry:   registry,
		events:     events,
		suppressed: suppressed,
		bootstrap:  bootstrap,
		instance:   instance,
	}, nil
}

// RecordEvent учитывает запись, дошедшую до проверки уровня.
func (c *PrometheusCollector) RecordEvent(sev logging.Severity, emitted bool) {
	outcome := outcomeEmitted
	if !emitted {
		outcome = outcomeDisabled
	}
	c.events.WithLabelValues(sev.String(), outcome).Inc()
}

// RecordSuppressed учитывает отброшенное до записи сообщение.
func (c *PrometheusCollector) RecordSuppressed(verdict logging.Verdict) {
	c.suppressed.WithLabelValues(verdict.String()).Inc()
}

// RecordBootstrap учитывает попытку bootstrap.
func (c *PrometheusCollector) RecordBootstrap(backend string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	if backend == "" {
		backend = "none"
	}
	c.bootstrap.WithLabelValues(backend, status).Inc()
}

// Push отправляет метрики в Pushgateway.
// Возвращает nil даже при ошибке — ошибки логируются.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	caller := logging.CallerOf[PrometheusCollector]("Push")

	if c.config.PushgatewayURL == "" {
		c.logger.Debug(caller, "metrics: pushgateway URL not configured, skipping push", nil)
		return nil
	}

	// Проверяем контекст
	select {
	case <-ctx.Done():
		c.logger.Debug(caller, "metrics push отменён", ctx.Err())
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	// Устанавливаем таймаут через контекст
	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error(caller, fmt.Sprintf("ошибка отправки метрик в Pushgateway %s (job=%s)",
			urlutil.MaskURL(c.config.PushgatewayURL), c.config.JobName), err)
		// Возвращаем nil — ошибка метрик не критична
		return nil
	}

	c.logger.Info(caller, fmt.Sprintf("метрики отправлены в Pushgateway %s (job=%s, instance=%s)",
		urlutil.MaskURL(c.config.PushgatewayURL), c.config.JobName, c.instance), nil)
	return nil
}

// GetRegistry возвращает внутренний registry для тестирования.
// Примечание: экспортируется только для unit-тестов.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
