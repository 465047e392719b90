package tracing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectorConfig — включённая конфигурация для локального otel-collector.
func collectorConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = "http://otel-collector:4318"
	cfg.Insecure = true
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "collector по умолчанию", mutate: func(*Config) {}},
		{name: "выключен без endpoint", mutate: func(c *Config) { c.Enabled = false; c.Endpoint = "" }},
		{name: "https с путём", mutate: func(c *Config) { c.Endpoint = "https://traces.example.com:443/v1/traces"; c.Insecure = false }},
		{name: "пустой endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: ErrTracingEndpointRequired},
		{name: "host:port без схемы", mutate: func(c *Config) { c.Endpoint = "otel-collector:4318" }, wantErr: ErrTracingEndpointInvalidFormat},
		{name: "grpc схема", mutate: func(c *Config) { c.Endpoint = "grpc://otel-collector:4317" }, wantErr: ErrTracingEndpointScheme},
		{name: "пустой service name", mutate: func(c *Config) { c.ServiceName = "" }, wantErr: ErrTracingServiceNameRequired},
		{name: "нулевой timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: ErrTracingTimeoutInvalid},
		{name: "sampling выше единицы", mutate: func(c *Config) { c.SamplingRate = 1.5 }, wantErr: ErrTracingSamplingRateInvalid},
		{name: "sampling ноль", mutate: func(c *Config) { c.SamplingRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := collectorConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsOffendingValue(t *testing.T) {
	cfg := collectorConfig()
	cfg.SamplingRate = -0.25

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-0.25")

	cfg = collectorConfig()
	cfg.Endpoint = "ftp://otel-collector:4318"
	assert.Contains(t, cfg.Validate().Error(), `"ftp"`)
}

func TestConfig_ExporterHost(t *testing.T) {
	tests := map[string]string{
		"http://otel-collector:4318":           "otel-collector:4318",
		"https://traces.example.com/v1/traces": "traces.example.com",
		"otel-collector:4318":                  "otel-collector:4318",
		"":                                     "",
	}
	for endpoint, want := range tests {
		cfg := Config{Endpoint: endpoint}
		assert.Equal(t, want, cfg.ExporterHost(), endpoint)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, "pquyquy-logging", cfg.ServiceName)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.InDelta(t, 1.0, cfg.SamplingRate, 1e-9)
	assert.NoError(t, cfg.Validate(), "выключенный трейсинг по умолчанию валиден")
}
