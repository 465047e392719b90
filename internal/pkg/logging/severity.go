package logging

import (
	"fmt"
	"strings"
)

// Severity — уровень важности записи лога.
// Уровни упорядочены: SeverityDebug < SeverityInfo < SeverityWarn < SeverityError < SeverityFatal.
type Severity int

// Поддерживаемые уровни важности.
const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

// String возвращает имя уровня для диагностики.
// Для неизвестных значений возвращает "SEVERITY(n)".
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// Valid сообщает, является ли s одним из известных уровней.
func (s Severity) Valid() bool {
	return s >= SeverityDebug && s <= SeverityFatal
}

// Severities возвращает все известные уровни по возрастанию важности.
func Severities() []Severity {
	return []Severity{SeverityDebug, SeverityInfo, SeverityWarn, SeverityError, SeverityFatal}
}

// ParseSeverity конвертирует имя уровня ("debug", "INFO", "warning", ...) в Severity.
// Регистр не учитывается.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	default:
		return 0, fmt.Errorf("logging: unknown severity %q", name)
	}
}
