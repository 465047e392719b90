package logging

import "github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"

// Sentinel-ошибки реестра. Сравниваются через errors.Is по коду:
//
//	if errors.Is(err, logging.ErrAlreadySet) { ... }
var (
	// ErrAlreadySet — попытка установить логгер повторно.
	ErrAlreadySet = &apperrors.AppError{Code: apperrors.ErrLoggerAlreadySet, Message: "logger instance has already been set"}

	// ErrUninitialized — логгер запрошен до установки.
	ErrUninitialized = &apperrors.AppError{Code: apperrors.ErrLoggerUnset, Message: "no logger instance has been specified"}

	// ErrNilLogger — попытка установить nil в качестве логгера.
	ErrNilLogger = &apperrors.AppError{Code: apperrors.ErrLoggerNil, Message: "logger instance cannot be nil"}
)
