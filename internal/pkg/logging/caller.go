package logging

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// unknownMethod подставляется в Name() когда метод не указан.
const unknownMethod = "?"

// Caller идентифицирует место вызова логгера: компонент (тип или пакет)
// и метод внутри него.
//
// Три способа получить Caller:
//
//	logging.NewCaller("billing.Service", "Charge") // явно
//	logging.CallerOf[Service]("Charge")            // по типу
//	logging.CallerHere()                           // по стеку вызовов
type Caller struct {
	// Component — имя типа или пакета, из которого ведётся логирование.
	Component string

	// Method — имя метода. Может быть пустым.
	Method string
}

// CallerIdentityError — некорректный Caller передан в вызов логгера.
// Это ошибка программиста, а не условие времени выполнения: backend-ы
// паникуют с этим значением вместо того чтобы молча проглотить вызов.
type CallerIdentityError struct {
	Reason string
}

// Error реализует интерфейс error.
func (e *CallerIdentityError) Error() string {
	return "logging: malformed caller identity: " + e.Reason
}

// NewCaller создаёт Caller из явно заданных компонента и метода.
func NewCaller(component, method string) Caller {
	return Caller{Component: component, Method: method}
}

// CallerOf создаёт Caller, компонент которого — имя типа T
// (например "bootstrap.Bootstrapper"). Указатели разыменовываются.
func CallerOf[T any](method string) Caller {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Caller{Component: t.String(), Method: method}
}

// CallerHere возвращает Caller функции, вызвавшей CallerHere.
// Паникует с *CallerIdentityError если место вызова определить не удалось.
func CallerHere() Caller {
	return CallerAt(1)
}

// CallerAt возвращает Caller функции на skip кадров выше вызывающего
// (skip=0 — сама вызывающая функция).
// Паникует с *CallerIdentityError если место вызова определить не удалось.
func CallerAt(skip int) Caller {
	pcs := make([]uintptr, 1)
	// +2: runtime.Callers и сама CallerAt.
	if runtime.Callers(skip+2, pcs) == 0 {
		panic(&CallerIdentityError{Reason: fmt.Sprintf("no stack frame at depth %d", skip)})
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	c, err := ParseFuncName(frame.Function)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	// closureSuffix — сегменты, которые компилятор добавляет к замыканиям: func1, 2, gowrap1.
	closureSuffix = regexp.MustCompile(`^(func|gowrap|deferwrap)?\d+$`)
	// typeParams — инстанцирование generic-типа в имени функции.
	typeParams = regexp.MustCompile(`\[[^\]]*\]`)
)

// ParseFuncName разбирает полное имя функции из runtime
// ("example.com/app/billing.(*Service).Charge.func1") на внешний тип
// ("billing.Service") и внутренний метод ("Charge"). Замыкания сворачиваются
// в метод, который их объявил. Для функций уровня пакета компонентом
// становится пакет.
func ParseFuncName(name string) (Caller, error) {
	if name == "" {
		return Caller{}, &CallerIdentityError{Reason: "empty function name"}
	}
	short := name
	if i := strings.LastIndex(short, "/"); i >= 0 {
		short = short[i+1:]
	}
	short = typeParams.ReplaceAllString(short, "")

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(short, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for len(parts) > 2 && closureSuffix.MatchString(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}

	switch {
	case len(parts) >= 3:
		typeName := strings.TrimSuffix(strings.TrimPrefix(parts[1], "(*"), ")")
		return Caller{Component: parts[0] + "." + typeName, Method: parts[2]}, nil
	case len(parts) == 2:
		return Caller{Component: parts[0], Method: parts[1]}, nil
	default:
		return Caller{}, &CallerIdentityError{Reason: fmt.Sprintf("cannot split %q into component and method", name)}
	}
}

// Validate проверяет что Caller пригоден для логирования.
func (c Caller) Validate() error {
	if strings.TrimSpace(c.Component) == "" {
		return &CallerIdentityError{Reason: "component is empty"}
	}
	return nil
}

// MethodName возвращает метод или "?" если он не указан.
func (c Caller) MethodName() string {
	if strings.TrimSpace(c.Method) == "" {
		return unknownMethod
	}
	return c.Method
}

// Name возвращает отображаемое имя "Component.Method".
func (c Caller) Name() string {
	return c.Component + "." + c.MethodName()
}

// String реализует fmt.Stringer.
func (c Caller) String() string {
	return c.Name()
}

// MustValidate паникует с *CallerIdentityError если Caller некорректен.
// Используется реализациями Logger в начале каждого вызова.
func (c Caller) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}

// callerKey — ключ для хранения Caller в context.
// Приватный тип предотвращает коллизии ключей с другими пакетами.
type callerKey struct{}

// WithCaller возвращает context с привязанным Caller.
// Context создаётся на один вызов логгера, поэтому привязка не переживает
// вызов и не видна параллельным вызовам.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext извлекает Caller из context.
// Возвращает false если Caller не привязан или ctx == nil.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
