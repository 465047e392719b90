// Package config загружает конфигурацию приложения: выбор backend-а логирования,
// метрики Prometheus и трейсинг OpenTelemetry.
//
// Источники в порядке возрастания приоритета: значения по умолчанию,
// YAML-файл из PQ_CONFIG_PATH, переменные окружения PQ_*.
// Конфигурация самого backend-а (уровень, формат, вывод) читается backend-ом
// отдельно, см. slogbackend.LoadConfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
	"github.com/zaicro/pquyquy-logging/internal/pkg/metrics"
	"github.com/zaicro/pquyquy-logging/internal/pkg/tracing"
)

// EnvConfigPath — переменная окружения с путём к YAML-конфигурации приложения.
const EnvConfigPath = "PQ_CONFIG_PATH"

// Config — корневая конфигурация приложения.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig содержит настройки bootstrap-а логирования.
type LoggingConfig struct {
	// Backend — явно выбранный кандидат (например "logging.slog").
	// Пусто — автоматический поиск среди зарегистрированных.
	Backend string `yaml:"backend" env:"PQ_LOG_BACKEND"`
}

// MetricsConfig содержит настройки для Prometheus метрик.
type MetricsConfig struct {
	// Enabled — включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"PQ_METRICS_ENABLED"`

	// PushgatewayURL — URL Prometheus Pushgateway.
	// Пример: "http://pushgateway:9091"
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"PQ_METRICS_PUSHGATEWAY_URL"`

	// JobName — имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"PQ_METRICS_JOB_NAME"`

	// Namespace — префикс имён метрик.
	Namespace string `yaml:"namespace" env:"PQ_METRICS_NAMESPACE"`

	// Timeout — таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"PQ_METRICS_TIMEOUT"`

	// InstanceLabel — переопределение instance label.
	// Если пусто — используется hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"PQ_METRICS_INSTANCE"`
}

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"PQ_TRACING_ENABLED"`

	// Endpoint — URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"PQ_TRACING_ENDPOINT"`

	// ServiceName — имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"PQ_TRACING_SERVICE_NAME"`

	// Environment — окружение (production, staging, development).
	Environment string `yaml:"environment" env:"PQ_TRACING_ENVIRONMENT"`

	// Insecure — использовать HTTP вместо HTTPS.
	Insecure bool `yaml:"insecure" env:"PQ_TRACING_INSECURE"`

	// Timeout — таймаут экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"PQ_TRACING_TIMEOUT"`

	// SamplingRate — доля сэмплируемых трейсов от 0.0 до 1.0.
	SamplingRate float64 `yaml:"samplingRate" env:"PQ_TRACING_SAMPLING_RATE"`
}

// Default возвращает конфигурацию со значениями по умолчанию пакетов metrics и tracing.
// Загрузка начинается с неё, поэтому у полей нет env-default тегов: cleanenv
// применял бы их к любому нулевому полю, включая явные `samplingRate: 0`.
func Default() Config {
	m := metrics.DefaultConfig()
	t := tracing.DefaultConfig()
	return Config{
		Metrics: MetricsConfig{
			Enabled:        m.Enabled,
			PushgatewayURL: m.PushgatewayURL,
			JobName:        m.JobName,
			Namespace:      m.Namespace,
			Timeout:        m.Timeout,
			InstanceLabel:  m.InstanceLabel,
		},
		Tracing: TracingConfig{
			Enabled:      t.Enabled,
			Endpoint:     t.Endpoint,
			ServiceName:  t.ServiceName,
			Environment:  t.Environment,
			Insecure:     t.Insecure,
			Timeout:      t.Timeout,
			SamplingRate: t.SamplingRate,
		},
	}
}

// Load загружает конфигурацию. Если задана PQ_CONFIG_PATH, читается YAML-файл
// с наложением переменных окружения, иначе только окружение.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return LoadEnv()
	}
	return LoadFile(path)
}

// LoadEnv загружает конфигурацию только из переменных окружения.
func LoadEnv() (*Config, error) {
	cfg := Default()
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			"не удалось прочитать конфигурацию из окружения", err)
	}
	return validated(&cfg)
}

// LoadFile загружает конфигурацию из YAML-файла; переменные окружения
// переопределяют значения файла.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("не удалось открыть файл конфигурации %s", path), err)
	}
	cfg := Default()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			fmt.Sprintf("не удалось разобрать файл конфигурации %s", path), err)
	}
	return validated(&cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"конфигурация не прошла проверку", err)
	}
	return cfg, nil
}

// Validate проверяет секции metrics и tracing. Все ошибки объединяются.
func (c *Config) Validate() error {
	m := c.Metrics.ToMetrics()
	t := c.Tracing.ToTracing()
	return errors.Join(m.Validate(), t.Validate())
}

// ToMetrics преобразует секцию в metrics.Config.
func (m MetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        m.Enabled,
		PushgatewayURL: m.PushgatewayURL,
		JobName:        m.JobName,
		Namespace:      m.Namespace,
		Timeout:        m.Timeout,
		InstanceLabel:  m.InstanceLabel,
	}
}

// ToTracing преобразует секцию в tracing.Config.
// Version берётся из сборки, а не из конфигурации.
func (t TracingConfig) ToTracing() tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Endpoint:     t.Endpoint,
		ServiceName:  t.ServiceName,
		Environment:  t.Environment,
		Insecure:     t.Insecure,
		Timeout:      t.Timeout,
		SamplingRate: t.SamplingRate,
	}
}
