//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/zaicro/pquyquy-logging/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
// Используется в InitializeApp для построения графа зависимостей.
var ProviderSet = wire.NewSet(
	ProvideRegistry,
	ProvideTraceContext,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideLogger,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App и выполняет bootstrap логирования.
// Backend-ы должны быть зарегистрированы заранее (blank import пакета backend-а).
// cleanup завершает tracer provider; вызывается после App.Shutdown.
//
// Wire генерирует реализацию этой функции в wire_gen.go.
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
