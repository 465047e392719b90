// Package bootstrap выбирает единственный backend логирования, создаёт его
// и устанавливает в logging.Registry.
//
// Выбор выполняется один раз при старте процесса:
//   - если в Options.Backend задано имя, используется кандидат с этим именем;
//   - иначе среди кандидатов каталога, чьё имя содержит logging.PackageName
//     и у которых есть конструктор, должен найтись ровно один.
//
// Ноль или несколько подходящих кандидатов — ошибка: bootstrap не угадывает.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
	"github.com/zaicro/pquyquy-logging/internal/pkg/metrics"
)

// Sentinel-ошибки bootstrap. Сравниваются через errors.Is по коду.
var (
	// ErrNoImplementation — нет ни одного подходящего кандидата.
	ErrNoImplementation = &apperrors.AppError{Code: apperrors.ErrDiscoveryNone, Message: "no logger implementation found"}

	// ErrAmbiguous — подходящих кандидатов больше одного.
	ErrAmbiguous = &apperrors.AppError{Code: apperrors.ErrDiscoveryAmbiguous, Message: "ambiguous logger implementation"}

	// ErrConstruction — кандидат выбран, но создать его не удалось.
	ErrConstruction = &apperrors.AppError{Code: apperrors.ErrBootstrapFailed, Message: "logger instance could not be created"}
)

// spanName — имя span-а, которым трассируется bootstrap.
const spanName = "logging.bootstrap"

// Instrumentable реализуют backend-ы, которые пишут собственные метрики.
// Bootstrap подключает к ним коллектор до установки в реестр.
type Instrumentable interface {
	Instrument(c metrics.Collector)
}

// Options — параметры bootstrap.
type Options struct {
	// Catalog — источник кандидатов. По умолчанию Default.
	Catalog *Catalog

	// Registry — реестр, в который устанавливается backend. Обязателен.
	Registry *logging.Registry

	// Backend — явное имя кандидата. Пустое значение включает
	// автоматический выбор.
	Backend string

	// Collector — коллектор метрик. По умолчанию metrics.NopCollector.
	Collector metrics.Collector

	// TracerProvider — источник tracer-а для span-а bootstrap.
	// По умолчанию noop.
	TracerProvider trace.TracerProvider
}

// Bootstrapper выполняет выбор, создание и установку backend-а.
type Bootstrapper struct {
	catalog   *Catalog
	registry  *logging.Registry
	backend   string
	collector metrics.Collector
	tracer    trace.Tracer
}

// New создаёт Bootstrapper. Паникует если opts.Registry == nil (programming error).
func New(opts Options) *Bootstrapper {
	if opts.Registry == nil {
		panic("bootstrap: nil registry")
	}
	if opts.Catalog == nil {
		opts.Catalog = Default
	}
	if opts.Collector == nil {
		opts.Collector = metrics.NewNopCollector()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = noop.NewTracerProvider()
	}
	return &Bootstrapper{
		catalog:   opts.Catalog,
		registry:  opts.Registry,
		backend:   strings.TrimSpace(opts.Backend),
		collector: opts.Collector,
		tracer:    opts.TracerProvider.Tracer("github.com/zaicro/pquyquy-logging/internal/bootstrap"),
	}
}

// Bootstrap — сокращение для New(opts).Initialize(ctx).
func Bootstrap(ctx context.Context, opts Options) (logging.Logger, error) {
	return New(opts).Initialize(ctx)
}

// Initialize выбирает кандидата, создаёт backend, устанавливает его в реестр
// и пишет через него же одну запись уровня Info о выбранном backend-е.
//
// Ошибки:
//   - ErrNoImplementation, ErrAmbiguous — выбор не удался;
//   - ErrConstruction — конструктор вернул ошибку, nil или паниковал
//     (причина доступна через errors.Unwrap);
//   - logging.ErrAlreadySet — реестр уже содержит логгер.
func (b *Bootstrapper) Initialize(ctx context.Context) (_ logging.Logger, err error) {
	_, span := b.tracer.Start(ctx, spanName)
	defer span.End()

	var selected string
	defer func() {
		b.collector.RecordBootstrap(selected, err == nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("logging.error_code", apperrors.CodeOf(err)))
		}
	}()

	candidate, err := b.selectCandidate()
	if err != nil {
		return nil, err
	}
	selected = candidate.Name
	span.SetAttributes(attribute.String("logging.backend", selected))

	logger, err := construct(candidate)
	if err != nil {
		return nil, err
	}

	if inst, ok := logger.(Instrumentable); ok {
		inst.Instrument(b.collector)
	}

	if err := b.registry.Set(logger); err != nil {
		// Невостребованный backend не должен держать файл вывода.
		if c, ok := logger.(io.Closer); ok {
			_ = c.Close() //nolint:errcheck // ошибку установки важнее вернуть как есть
		}
		return nil, err
	}

	logger.Info(logging.CallerOf[Bootstrapper]("Initialize"),
		fmt.Sprintf("Logger instance created successfully. %s will be used.", selected), nil)
	span.AddEvent("logger installed")

	return logger, nil
}

// selectCandidate применяет явный выбор или правило «ровно один».
func (b *Bootstrapper) selectCandidate() (Candidate, error) {
	if b.backend != "" {
		c, ok := b.catalog.Lookup(b.backend)
		if !ok || !c.Instantiable() {
			return Candidate{}, apperrors.NewAppError(apperrors.ErrDiscoveryNone,
				fmt.Sprintf("logger implementation %q is not registered (available: %s)",
					b.backend, joinNames(b.catalog.Names())), nil)
		}
		return c, nil
	}

	qualified := b.catalog.Qualified()
	switch len(qualified) {
	case 0:
		return Candidate{}, apperrors.NewAppError(apperrors.ErrDiscoveryNone,
			fmt.Sprintf("no logger implementation found: no registered candidate name contains %q",
				logging.PackageName), nil)
	case 1:
		return qualified[0], nil
	default:
		names := make([]string, 0, len(qualified))
		for _, c := range qualified {
			names = append(names, c.Name)
		}
		return Candidate{}, apperrors.NewAppError(apperrors.ErrDiscoveryAmbiguous,
			fmt.Sprintf("ambiguous logger implementation: %s; select one explicitly", joinNames(names)), nil)
	}
}

// construct вызывает конструктор кандидата. Ошибка, nil-результат и паника
// превращаются в ErrConstruction с причиной.
func construct(c Candidate) (logger logging.Logger, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			logger = nil
			err = constructionError(c.Name, cause)
		}
	}()

	logger, err = c.New()
	if err != nil {
		return nil, constructionError(c.Name, err)
	}
	if logging.IsNil(logger) {
		return nil, constructionError(c.Name, errors.New("constructor returned nil logger"))
	}
	return logger, nil
}

func constructionError(name string, cause error) error {
	return apperrors.NewAppError(apperrors.ErrBootstrapFailed,
		fmt.Sprintf("logger instance %s could not be created", name), cause)
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
