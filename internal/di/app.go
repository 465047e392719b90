// Package di собирает граф зависимостей приложения через Wire.
//
// Порядок создания задаётся зависимостями провайдеров:
// реестр → коллектор метрик и tracer provider (логируют через logging.Forward) →
// bootstrap backend-а. После InitializeApp реестр уже содержит логгер.
package di

import (
	"context"
	"errors"
	"io"

	"github.com/zaicro/pquyquy-logging/internal/config"
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
	"github.com/zaicro/pquyquy-logging/internal/pkg/metrics"
	"github.com/zaicro/pquyquy-logging/internal/pkg/tracing"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию приложения.
	Config *config.Config

	// Registry — реестр процесса, в который bootstrap установил Logger.
	Registry *logging.Registry

	// Logger — установленный backend.
	Logger logging.Logger

	// TraceID — идентификатор запуска; им же помечен span bootstrap.
	TraceID string

	// MetricsCollector собирает метрики записей и bootstrap.
	// Если метрики отключены — используется NopCollector.
	MetricsCollector metrics.Collector

	// Tracer — OTel provider. Если трейсинг отключён — nop.
	// Завершается cleanup-функцией InitializeApp.
	Tracer *tracing.Provider
}

// Shutdown отправляет метрики и закрывает backend, если тот держит ресурсы
// (файл лога). Ошибки объединяются. Tracer provider завершает cleanup из InitializeApp.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.MetricsCollector != nil {
		errs = append(errs, a.MetricsCollector.Push(ctx))
	}
	if c, ok := a.Logger.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
