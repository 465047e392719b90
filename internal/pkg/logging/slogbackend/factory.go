package slogbackend

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// LevelFatal — уровень slog для logging.SeverityFatal.
// В slog нет FATAL; уровень выше Error выводится как "FATAL" через replaceLevel.
const LevelFatal = slog.Level(12)

// newWriter выбирает io.Writer по config.Output.
//
// Поддерживаемые режимы вывода (config.Output):
//   - "stderr" или "" (default): логи пишутся в os.Stderr
//   - "file": логи пишутся в файл с автоматической ротацией через lumberjack
//
// Второе значение — io.Closer для файлового вывода (nil для stderr).
func newWriter(config Config) (io.Writer, io.Closer) {
	switch config.Output {
	case OutputFile:
		return newLumberjackWriter(config)
	case OutputStderr, "":
		return os.Stderr, nil
	default:
		// Неизвестный output: предупреждаем в stderr, чтобы не терять логи молча.
		_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
			"WARNING: unknown logging output %q, falling back to stderr\n", config.Output)
		return os.Stderr, nil
	}
}

// newLumberjackWriter создаёт io.Writer с ротацией на основе lumberjack.
// Автоматически создаёт директорию для файла логов если не существует.
// При пустом FilePath возвращает os.Stderr как fallback.
func newLumberjackWriter(config Config) (io.Writer, io.Closer) {
	if config.FilePath == "" {
		_, _ = os.Stderr.WriteString("WARNING: logging output=file but filePath is empty, falling back to stderr\n") //nolint:errcheck // bootstrap stderr
		return os.Stderr, nil
	}

	dir := filepath.Dir(config.FilePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
				"WARNING: cannot create log directory %q: %v, falling back to stderr\n", dir, err)
			return os.Stderr, nil
		}
	}

	lj := &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
	return lj, lj
}

// newHandler создаёт slog.Handler заданного формата поверх w.
// Уровень FATAL получает собственное имя в выводе.
func newHandler(config Config, w io.Writer) slog.Handler {
	level, err := parseLevel(config.Level)
	if err != nil {
		// Неизвестный уровень → используем info как безопасный default
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}

	switch config.Format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// replaceLevel переименовывает LevelFatal в "FATAL" (по умолчанию slog выводит "ERROR+4").
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelFatal {
			return slog.String(slog.LevelKey, logging.SeverityFatal.String())
		}
	}
	return a
}

// parseLevel конвертирует строковый уровень в slog.Level.
// Пустая строка означает уровень по умолчанию (info).
func parseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelInfo, nil
	}
	sev, err := logging.ParseSeverity(level)
	if err != nil {
		return slog.LevelInfo, err
	}
	lvl, _ := slogLevel(sev)
	return lvl, nil
}

// slogLevel отображает Severity фасада на уровень slog.
// Второе значение false для неизвестного Severity.
func slogLevel(sev logging.Severity) (slog.Level, bool) {
	switch sev {
	case logging.SeverityDebug:
		return slog.LevelDebug, true
	case logging.SeverityInfo:
		return slog.LevelInfo, true
	case logging.SeverityWarn:
		return slog.LevelWarn, true
	case logging.SeverityError:
		return slog.LevelError, true
	case logging.SeverityFatal:
		return LevelFatal, true
	default:
		return slog.LevelInfo, false
	}
}
