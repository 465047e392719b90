package logging

// Forward возвращает Logger, который на каждом вызове делегирует логгеру,
// установленному в reg на этот момент. Вызовы до установки отбрасываются.
//
// Нужен инфраструктуре (метрики, трейсинг), которая создаётся раньше
// bootstrap и сама должна логировать через будущий backend.
// Прикладной код должен использовать reg.Get(): там обращение до установки
// является ошибкой.
func Forward(reg *Registry) Logger {
	return &forwardLogger{reg: reg}
}

type forwardLogger struct {
	reg *Registry
}

func (f *forwardLogger) target(caller Caller) Logger {
	caller.MustValidate()
	logger, err := f.reg.Get()
	if err != nil {
		return nil
	}
	return logger
}

func (f *forwardLogger) Debug(caller Caller, msg string, err error) {
	if l := f.target(caller); l != nil {
		l.Debug(caller, msg, err)
	}
}

func (f *forwardLogger) Info(caller Caller, msg string, err error) {
	if l := f.target(caller); l != nil {
		l.Info(caller, msg, err)
	}
}

func (f *forwardLogger) Warn(caller Caller, msg string, err error) {
	if l := f.target(caller); l != nil {
		l.Warn(caller, msg, err)
	}
}

func (f *forwardLogger) Error(caller Caller, msg string, err error) {
	if l := f.target(caller); l != nil {
		l.Error(caller, msg, err)
	}
}

func (f *forwardLogger) Fatal(caller Caller, msg string, err error) {
	if l := f.target(caller); l != nil {
		l.Fatal(caller, msg, err)
	}
}
