package logging

import "time"

// Event — одна запись лога: уровень, место вызова, сообщение и
// опциональная ошибка. Создаётся на каждый вызов и нигде не хранится.
type Event struct {
	Severity Severity
	Caller   Caller
	Message  string
	Err      error
	Time     time.Time
}

// NewEvent создаёт Event с текущим временем.
func NewEvent(sev Severity, caller Caller, msg string, err error) Event {
	return Event{
		Severity: sev,
		Caller:   caller,
		Message:  msg,
		Err:      err,
		Time:     time.Now(),
	}
}
