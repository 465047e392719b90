// Package main — демонстрационное приложение фасада логирования.
// Загружает конфигурацию, выполняет bootstrap backend-а и пишет по одной
// записи каждого уровня.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/zaicro/pquyquy-logging/internal/config"
	"github.com/zaicro/pquyquy-logging/internal/constants"
	"github.com/zaicro/pquyquy-logging/internal/di"
	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"

	// Backend регистрируется в bootstrap.Default через init().
	_ "github.com/zaicro/pquyquy-logging/internal/pkg/logging/slogbackend"
)

func main() {
	os.Exit(run())
}

// run возвращает exit code; os.Exit вызывается после отработки defer-ов.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitConfig
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать логирование (%s): %v\n",
			apperrors.CodeOf(err), err)
		return constants.ExitBootstrap
	}
	defer cleanup()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка завершения: %v\n", err)
		}
	}()

	demo(app.Logger, app.TraceID)
	return constants.ExitOK
}

func demo(l logging.Logger, traceID string) {
	caller := logging.CallerHere()

	l.Debug(caller, fmt.Sprintf("version=%s trace_id=%s", constants.Version, traceID), nil)
	l.Info(caller, "demo started", nil)
	l.Warn(caller, "disk usage above 80%", nil)
	l.Error(caller, "request failed", errors.New("connection reset by peer"))
	l.Fatal(caller, "unrecoverable state reached (process keeps running)", nil)
	logging.LogEvent(l, logging.NewEvent(logging.Severity(99), caller, "event with unknown severity", nil))
}
