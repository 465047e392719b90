package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
	"github.com/zaicro/pquyquy-logging/internal/pkg/metrics"
	"github.com/zaicro/pquyquy-logging/internal/pkg/tracing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadEnv_Defaults проверяет значения по умолчанию.
func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Empty(t, cfg.Logging.Backend)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "pquyquy-logging", cfg.Metrics.JobName)
	assert.Equal(t, "pquyquy", cfg.Metrics.Namespace)
	assert.Equal(t, 10*time.Second, cfg.Metrics.Timeout)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, tracing.DefaultServiceName, cfg.Tracing.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.Tracing.Timeout)
	assert.InDelta(t, 1.0, cfg.Tracing.SamplingRate, 1e-9)
}

// TestLoadEnv_Overrides проверяет чтение переменных PQ_*.
func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("PQ_LOG_BACKEND", "logging.slog")
	t.Setenv("PQ_METRICS_ENABLED", "true")
	t.Setenv("PQ_METRICS_PUSHGATEWAY_URL", "http://pushgateway:9091")
	t.Setenv("PQ_METRICS_TIMEOUT", "3s")
	t.Setenv("PQ_TRACING_SAMPLING_RATE", "0.25")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "logging.slog", cfg.Logging.Backend)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "http://pushgateway:9091", cfg.Metrics.PushgatewayURL)
	assert.Equal(t, 3*time.Second, cfg.Metrics.Timeout)
	assert.InDelta(t, 0.25, cfg.Tracing.SamplingRate, 1e-9)
}

// TestLoadEnv_MalformedValue проверяет ошибку разбора значения из окружения.
func TestLoadEnv_MalformedValue(t *testing.T) {
	t.Setenv("PQ_METRICS_TIMEOUT", "soon")

	_, err := LoadEnv()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConfigParse, apperrors.CodeOf(err))
}

// TestLoadFile_YAML проверяет загрузку всех секций из файла.
func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, `
logging:
  backend: logging.slog
metrics:
  enabled: true
  pushgatewayUrl: http://pushgateway:9091
  namespace: demo
tracing:
  enabled: true
  endpoint: http://jaeger:4318
  insecure: true
  samplingRate: 0.5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "logging.slog", cfg.Logging.Backend)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "demo", cfg.Metrics.Namespace)
	assert.Equal(t, "pquyquy-logging", cfg.Metrics.JobName, "незаданное поле получает значение по умолчанию")
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.Tracing.Insecure)
	assert.Equal(t, "http://jaeger:4318", cfg.Tracing.Endpoint)
	assert.InDelta(t, 0.5, cfg.Tracing.SamplingRate, 1e-9)
}

// TestLoadFile_ExplicitZeroValues проверяет, что явные нулевые значения файла сохраняются.
func TestLoadFile_ExplicitZeroValues(t *testing.T) {
	path := writeConfig(t, "tracing:\n  samplingRate: 0\nmetrics:\n  namespace: \"\"\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, cfg.Tracing.SamplingRate, 1e-9)
	assert.Empty(t, cfg.Metrics.Namespace)
	assert.Equal(t, 5*time.Second, cfg.Tracing.Timeout, "незаданное поле получает значение по умолчанию")
}

// TestLoadFile_EnvOverridesFile проверяет приоритет окружения над файлом.
func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "logging:\n  backend: logging.file\n")
	t.Setenv("PQ_LOG_BACKEND", "logging.slog")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "logging.slog", cfg.Logging.Backend)
}

// TestLoadFile_Errors проверяет коды ошибок загрузки.
func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode string
	}{
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			wantCode: apperrors.ErrConfigLoad,
		},
		{
			name:     "invalid yaml",
			path:     func(t *testing.T) string { return writeConfig(t, "metrics: [unterminated\n") },
			wantCode: apperrors.ErrConfigParse,
		},
		{
			name:     "metrics without pushgateway",
			path:     func(t *testing.T) string { return writeConfig(t, "metrics:\n  enabled: true\n") },
			wantCode: apperrors.ErrConfigValidate,
		},
		{
			name:     "tracing without endpoint",
			path:     func(t *testing.T) string { return writeConfig(t, "tracing:\n  enabled: true\n") },
			wantCode: apperrors.ErrConfigValidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path(t))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}
}

// TestValidate_JoinsSectionErrors проверяет, что ошибки обеих секций доступны через errors.Is.
func TestValidate_JoinsSectionErrors(t *testing.T) {
	cfg := Config{
		Metrics: MetricsConfig{Enabled: true, JobName: "job", Timeout: time.Second},
		Tracing: TracingConfig{Enabled: true, ServiceName: "svc", Timeout: time.Second},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, metrics.ErrPushgatewayURLRequired))
	assert.True(t, errors.Is(err, tracing.ErrTracingEndpointRequired))
}

// TestLoad_SelectsSource проверяет выбор источника по PQ_CONFIG_PATH.
func TestLoad_SelectsSource(t *testing.T) {
	t.Run("env only", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("PQ_LOG_BACKEND", "logging.env")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "logging.env", cfg.Logging.Backend)
	})

	t.Run("file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, writeConfig(t, "logging:\n  backend: logging.yaml\n"))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "logging.yaml", cfg.Logging.Backend)
	})
}

// TestSectionConversion проверяет перенос полей в конфигурации пакетов.
func TestSectionConversion(t *testing.T) {
	m := MetricsConfig{
		Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j",
		Namespace: "ns", Timeout: time.Second, InstanceLabel: "host-1",
	}.ToMetrics()
	assert.Equal(t, metrics.Config{
		Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j",
		Namespace: "ns", Timeout: time.Second, InstanceLabel: "host-1",
	}, m)

	tr := TracingConfig{
		Enabled: true, Endpoint: "http://jaeger:4318", ServiceName: "svc",
		Environment: "staging", Insecure: true, Timeout: 2 * time.Second, SamplingRate: 0.1,
	}.ToTracing()
	assert.Equal(t, "svc", tr.ServiceName)
	assert.Equal(t, "staging", tr.Environment)
	assert.True(t, tr.Insecure)
	assert.Empty(t, tr.Version)
	assert.InDelta(t, 0.1, tr.SamplingRate, 1e-9)
}
