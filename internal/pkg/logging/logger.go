// Package logging определяет фасад логирования: контракт Logger, который
// реализует ровно один подключаемый backend, уровни важности, идентификацию
// места вызова и реестр с однократной установкой активного логгера.
//
// Прикладной код знает только Logger и Registry и никогда не знает,
// какой backend активен:
//
//	logger := registry.MustGet()
//	logger.Info(logging.CallerOf[Service]("Start"), "сервис запущен", nil)
package logging

// PackageName — имя пакета фасада. Backend-ы, чьё имя кандидата содержит
// эту подстроку, участвуют в автоматическом выборе при bootstrap.
const PackageName = "logging"

// Logger определяет контракт, который реализует каждый backend.
//
// Каждый метод принимает место вызова, сообщение (может быть пустым) и
// опциональную ошибку (nil если ошибки нет).
//
// Методы не возвращают ошибок и не паникуют при фильтрации или отключённом
// уровне — такие сообщения просто не пишутся. Единственное исключение:
// некорректный Caller — ошибка программиста, и реализация паникует
// с *CallerIdentityError.
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	// Используется для детальной диагностики.
	Debug(caller Caller, msg string, err error)

	// Info записывает сообщение уровня INFO.
	// Используется для значимых событий (старт/стоп, успешные операции).
	Info(caller Caller, msg string, err error)

	// Warn записывает сообщение уровня WARN.
	// Используется для recoverable issues, deprecated usage.
	Warn(caller Caller, msg string, err error)

	// Error записывает сообщение уровня ERROR.
	// Используется для ошибок требующих внимания.
	Error(caller Caller, msg string, err error)

	// Fatal записывает сообщение уровня FATAL.
	// Процесс не завершается — решение об остановке принимает вызывающий.
	Fatal(caller Caller, msg string, err error)
}

// Dispatcher — Logger, который умеет писать событие с произвольным уровнем.
// Реализуется backend-ами, у которых все уровни сводятся к одному пути записи.
type Dispatcher interface {
	Logger

	// Log записывает сообщение с уровнем sev. Для неизвестного sev
	// backend сам решает как деградировать, но не должен молча терять запись.
	Log(sev Severity, caller Caller, msg string, err error)
}

// LogEvent передаёт Event в logger, выбирая метод по уровню.
// Если logger реализует Dispatcher, событие передаётся как есть,
// включая неизвестные уровни; иначе неизвестный уровень пишется как Info.
func LogEvent(logger Logger, e Event) {
	if d, ok := logger.(Dispatcher); ok {
		d.Log(e.Severity, e.Caller, e.Message, e.Err)
		return
	}
	switch e.Severity {
	case SeverityDebug:
		logger.Debug(e.Caller, e.Message, e.Err)
	case SeverityWarn:
		logger.Warn(e.Caller, e.Message, e.Err)
	case SeverityError:
		logger.Error(e.Caller, e.Message, e.Err)
	case SeverityFatal:
		logger.Fatal(e.Caller, e.Message, e.Err)
	default:
		logger.Info(e.Caller, e.Message, e.Err)
	}
}
