package logging

// NopLogger — реализация Logger, которая ничего не пишет.
// Используется в тестах для отключения логирования.
// Caller всё равно проверяется: ошибка программиста не должна
// маскироваться отключённым логированием.
type NopLogger struct{}

// NewNopLogger создаёт Logger, который игнорирует все сообщения.
// Полезен для unit-тестов где логирование не важно.
func NewNopLogger() Logger {
	return &NopLogger{}
}

// Debug ничего не пишет.
func (n *NopLogger) Debug(caller Caller, _ string, _ error) { caller.MustValidate() }

// Info ничего не пишет.
func (n *NopLogger) Info(caller Caller, _ string, _ error) { caller.MustValidate() }

// Warn ничего не пишет.
func (n *NopLogger) Warn(caller Caller, _ string, _ error) { caller.MustValidate() }

// Error ничего не пишет.
func (n *NopLogger) Error(caller Caller, _ string, _ error) { caller.MustValidate() }

// Fatal ничего не пишет.
func (n *NopLogger) Fatal(caller Caller, _ string, _ error) { caller.MustValidate() }
