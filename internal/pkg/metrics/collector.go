// Package metrics предоставляет интерфейсы и реализации для сбора метрик
// фасада логирования и их отправки в Prometheus Pushgateway.
//
// Пакет следует паттернам проекта:
//   - Interface Segregation: Collector interface для абстракции
//   - Factory pattern: NewCollector выбирает реализацию на основе конфигурации
//   - Graceful degradation: NopCollector при отключённых метриках
package metrics

import (
	"context"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
//
// ВАЖНО: Record* методы вызываются из горячего пути backend-а и НЕ ДОЛЖНЫ
// логировать — иначе каждая запись порождала бы новую запись.
type Collector interface {
	// RecordEvent учитывает запись уровня sev, дошедшую до проверки уровня.
	// emitted=false — уровень отключён в движке и запись не выполнена.
	RecordEvent(sev logging.Severity, emitted bool)

	// RecordSuppressed учитывает сообщение, отброшенное до записи
	// (verdict — logging.VerdictFiltered или logging.VerdictEmpty).
	RecordSuppressed(verdict logging.Verdict)

	// RecordBootstrap учитывает попытку bootstrap с выбранным backend-ом.
	// backend пустой если выбор не состоялся.
	RecordBootstrap(backend string, success bool)

	// Push отправляет метрики в Pushgateway.
	// Возвращает nil даже при ошибке — ошибки логируются внутри реализации.
	Push(ctx context.Context) error
}
