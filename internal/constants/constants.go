// Package constants содержит константы, общие для пакетов проекта.
package constants

// Version — версия приложения. Переопределяется при сборке:
//
//	go build -ldflags "-X github.com/zaicro/pquyquy-logging/internal/constants.Version=1.2.3"
var Version = "dev"

// Коды завершения процесса.
const (
	// ExitOK — успешное завершение.
	ExitOK = 0
	// ExitConfig — конфигурация не загружена.
	ExitConfig = 1
	// ExitBootstrap — backend логирования не установлен.
	ExitBootstrap = 2
)
