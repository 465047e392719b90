package logging

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Registry хранит единственный активный Logger процесса.
//
// Registry — явный объект, который передаётся зависимостям по ссылке;
// пакет не держит глобального экземпляра. Гарантия одна: логгер
// устанавливается ровно один раз и после этого не меняется.
//
// Состояния: пустой → установлен. Переход выполняется одним успешным Set,
// состояние «установлен» финальное.
type Registry struct {
	// mu сериализует check-and-install в Set.
	mu sync.Mutex
	// current публикует установленный логгер для lock-free чтения в Get.
	current atomic.Pointer[installed]
}

// installed оборачивает интерфейс, чтобы публиковать его через atomic.Pointer.
type installed struct {
	logger Logger
}

// NewRegistry создаёт пустой Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set устанавливает логгер.
//
// Возвращает ErrNilLogger если logger == nil (включая typed nil),
// ErrAlreadySet если логгер уже установлен. Из нескольких параллельных
// вызовов успешен ровно один, остальные получают ErrAlreadySet.
func (r *Registry) Set(logger Logger) error {
	if IsNil(logger) {
		return ErrNilLogger
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current.Load() != nil {
		return ErrAlreadySet
	}
	r.current.Store(&installed{logger: logger})
	return nil
}

// Get возвращает установленный логгер.
// Возвращает ErrUninitialized если Set ещё не вызывался успешно.
// После установки всегда возвращает тот же экземпляр; блокировок нет.
func (r *Registry) Get() (Logger, error) {
	cur := r.current.Load()
	if cur == nil {
		return nil, ErrUninitialized
	}
	return cur.logger, nil
}

// MustGet возвращает установленный логгер или паникует с ErrUninitialized.
func (r *Registry) MustGet() Logger {
	logger, err := r.Get()
	if err != nil {
		panic(err)
	}
	return logger
}

// IsSet сообщает, установлен ли логгер.
func (r *Registry) IsSet() bool {
	return r.current.Load() != nil
}

// IsNil распознаёт и nil-интерфейс, и интерфейс с nil-указателем внутри.
func IsNil(logger Logger) bool {
	if logger == nil {
		return true
	}
	v := reflect.ValueOf(logger)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
