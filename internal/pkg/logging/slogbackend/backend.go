// Package slogbackend — backend фасада logging поверх log/slog.
//
// Backend регистрируется в bootstrap.Default под именем CandidateName
// при импорте пакета:
//
//	import _ "github.com/zaicro/pquyquy-logging/internal/pkg/logging/slogbackend"
//
// Конфигурация читается из YAML-файла (PQ_LOG_CONFIG) и переменных PQ_LOG_*.
package slogbackend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
	"github.com/zaicro/pquyquy-logging/internal/pkg/metrics"
)

// Backend реализует logging.Dispatcher поверх slog.
//
// Порядок обработки вызова:
//  1. проверка Caller (паника с *logging.CallerIdentityError);
//  2. фильтр сообщения и отбрасывание пустых сообщений без ошибки;
//  3. привязка Caller к context вызова;
//  4. проверка включённости уровня в handler-е и запись.
//
// Паники фильтра, коллектора и handler-а перехватываются и не доходят
// до вызывающего.
type Backend struct {
	logger *slog.Logger
	filter logging.MessageFilter
	closer io.Closer

	collector atomic.Pointer[collectorBox]
}

// collectorBox нужен для atomic.Pointer: интерфейс нельзя хранить напрямую.
type collectorBox struct {
	c metrics.Collector
}

type options struct {
	filter    logging.MessageFilter
	handler   slog.Handler
	writer    io.Writer
	collector metrics.Collector
}

// Option настраивает Backend при создании.
type Option func(*options)

// WithFilter добавляет программный фильтр сообщений.
// Объединяется с фильтром из Config.Filter: сообщение отбрасывается,
// если его отклоняет любой из них.
func WithFilter(filter logging.MessageFilter) Option {
	return func(o *options) {
		o.filter = filter
	}
}

// WithHandler задаёт готовый slog.Handler. Format, Level и Output
// из Config при этом не используются.
func WithHandler(h slog.Handler) Option {
	return func(o *options) {
		o.handler = h
	}
}

// WithWriter задаёт writer вместо Config.Output.
// Полезно для тестирования или кастомных outputs.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithCollector задаёт коллектор метрик. Эквивалентно вызову Instrument после создания.
func WithCollector(c metrics.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// New создаёт Backend с конфигурацией из окружения (см. LoadConfig).
// Это конструктор без параметров, который использует bootstrap.
func New() (*Backend, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithOptions(cfg)
}

// NewWithOptions создаёт Backend с явной конфигурацией.
func NewWithOptions(cfg Config, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfgFilter, err := cfg.Filter.Build()
	if err != nil {
		return nil, err
	}

	b := &Backend{
		filter: logging.AnyFilter(cfgFilter, o.filter),
	}

	handler := o.handler
	if handler == nil {
		w := o.writer
		if w == nil {
			w, b.closer = newWriter(cfg)
		}
		handler = newHandler(cfg, w)
	}
	b.logger = slog.New(newCallerHandler(handler))

	if o.collector != nil {
		b.Instrument(o.collector)
	}
	return b, nil
}

// Instrument подключает коллектор метрик. Может вызываться повторно;
// каждый вызов логгера видит либо старый, либо новый коллектор целиком.
func (b *Backend) Instrument(c metrics.Collector) {
	if c == nil {
		b.collector.Store(nil)
		return
	}
	b.collector.Store(&collectorBox{c: c})
}

func (b *Backend) recorder() metrics.Collector {
	if box := b.collector.Load(); box != nil {
		return box.c
	}
	return nopCollector
}

var nopCollector = metrics.NewNopCollector()

// Log записывает сообщение с уровнем sev.
// Неизвестный уровень пишется как Info, которому предшествует Warn об аномалии.
func (b *Backend) Log(sev logging.Severity, caller logging.Caller, msg string, err error) {
	caller.MustValidate()

	// Всё после проверки Caller (фильтр, метрики, handler) не должно
	// ронять вызывающего.
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // последний канал для сбоя backend-а
				"WARNING: slog backend panicked while logging: %v\n", r)
		}
	}()

	if v := logging.Admit(b.filter, msg, err); v != logging.VerdictEmit {
		b.recorder().RecordSuppressed(v)
		return
	}

	ctx := logging.WithCaller(context.Background(), caller)

	level, known := slogLevel(sev)
	if !known {
		b.write(ctx, logging.SeverityWarn, slog.LevelWarn,
			fmt.Sprintf("Encountered unknown log level %s, writing out as Info.", sev), nil)
		sev = logging.SeverityInfo
	}
	b.write(ctx, sev, level, msg, err)
}

// write проверяет уровень в handler-е и пишет запись.
func (b *Backend) write(ctx context.Context, sev logging.Severity, level slog.Level, msg string, err error) {
	enabled := b.logger.Enabled(ctx, level)
	b.recorder().RecordEvent(sev, enabled)
	if !enabled {
		return
	}
	if err != nil {
		b.logger.LogAttrs(ctx, level, msg, slog.String(AttrError, err.Error()))
		return
	}
	b.logger.LogAttrs(ctx, level, msg)
}

// Debug записывает сообщение уровня DEBUG.
func (b *Backend) Debug(caller logging.Caller, msg string, err error) {
	b.Log(logging.SeverityDebug, caller, msg, err)
}

// Info записывает сообщение уровня INFO.
func (b *Backend) Info(caller logging.Caller, msg string, err error) {
	b.Log(logging.SeverityInfo, caller, msg, err)
}

// Warn записывает сообщение уровня WARN.
func (b *Backend) Warn(caller logging.Caller, msg string, err error) {
	b.Log(logging.SeverityWarn, caller, msg, err)
}

// Error записывает сообщение уровня ERROR.
func (b *Backend) Error(caller logging.Caller, msg string, err error) {
	b.Log(logging.SeverityError, caller, msg, err)
}

// Fatal записывает сообщение уровня FATAL. Процесс не завершается.
func (b *Backend) Fatal(caller logging.Caller, msg string, err error) {
	b.Log(logging.SeverityFatal, caller, msg, err)
}

// Close закрывает файловый writer, если он был открыт.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
