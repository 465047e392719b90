package metrics

import (
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// NewCollector создаёт Collector на основе конфигурации.
// Если metrics отключены (Config.Enabled = false) — возвращает NopCollector.
// Если включены — возвращает PrometheusCollector.
//
// logger обычно logging.Forward(registry): коллектор создаётся до bootstrap,
// а его собственные сообщения (ошибки push) должны идти в будущий backend.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return NewPrometheusCollector(config, logger)
}
