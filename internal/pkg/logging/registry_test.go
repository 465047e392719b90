package logging

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
)

// namedLogger — Logger ненулевого размера: указатели на разные экземпляры различимы.
type namedLogger struct {
	NopLogger
	name string
}

func newNamedLogger(name string) *namedLogger { return &namedLogger{name: name} }

// TestRegistry_GetBeforeSet проверяет fail-fast при обращении до установки.
func TestRegistry_GetBeforeSet(t *testing.T) {
	reg := NewRegistry()

	logger, err := reg.Get()
	assert.Nil(t, logger)
	assert.ErrorIs(t, err, ErrUninitialized)
	assert.Equal(t, apperrors.ErrLoggerUnset, apperrors.CodeOf(err))
	assert.False(t, reg.IsSet())
	assert.PanicsWithError(t, ErrUninitialized.Error(), func() { reg.MustGet() })
}

// TestRegistry_SetThenGet проверяет, что Get возвращает тот же экземпляр.
func TestRegistry_SetThenGet(t *testing.T) {
	reg := NewRegistry()
	want := newNamedLogger("want")

	require.NoError(t, reg.Set(want))
	assert.True(t, reg.IsSet())

	for i := 0; i < 100; i++ {
		got, err := reg.Get()
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
	assert.Same(t, want, reg.MustGet())
}

// TestRegistry_SetTwice проверяет запрет замены логгера.
func TestRegistry_SetTwice(t *testing.T) {
	reg := NewRegistry()
	first := newNamedLogger("first")

	require.NoError(t, reg.Set(first))
	for i := 0; i < 3; i++ {
		err := reg.Set(newNamedLogger("second"))
		assert.ErrorIs(t, err, ErrAlreadySet)
	}

	got, err := reg.Get()
	require.NoError(t, err)
	assert.Same(t, first, got)
}

// TestRegistry_SetNil проверяет отказ от nil и typed nil.
func TestRegistry_SetNil(t *testing.T) {
	reg := NewRegistry()

	assert.ErrorIs(t, reg.Set(nil), ErrNilLogger)

	var typedNil *NopLogger
	assert.ErrorIs(t, reg.Set(typedNil), ErrNilLogger)

	assert.False(t, reg.IsSet(), "отказ не должен менять состояние")
	require.NoError(t, reg.Set(NewNopLogger()))
}

// TestRegistry_ConcurrentSet проверяет, что из параллельных Set успешен ровно один.
func TestRegistry_ConcurrentSet(t *testing.T) {
	const rounds = 50
	const racers = 64

	for round := 0; round < rounds; round++ {
		reg := NewRegistry()
		loggers := make([]Logger, racers)
		for i := range loggers {
			loggers[i] = newNamedLogger(fmt.Sprintf("racer-%d", i))
		}

		var (
			wg        sync.WaitGroup
			start     = make(chan struct{})
			successes atomic.Int32
			winner    atomic.Int32
		)
		winner.Store(-1)

		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				err := reg.Set(loggers[i])
				switch {
				case err == nil:
					successes.Add(1)
					winner.Store(int32(i))
				case errors.Is(err, ErrAlreadySet):
				default:
					t.Errorf("неожиданная ошибка: %v", err)
				}
			}(i)
		}
		close(start)
		wg.Wait()

		require.Equal(t, int32(1), successes.Load(), "round %d", round)
		got, err := reg.Get()
		require.NoError(t, err)
		assert.Same(t, loggers[winner.Load()], got)
	}
}

// TestRegistry_ConcurrentGetDuringSet проверяет, что читатели видят либо ошибку, либо установленный логгер.
func TestRegistry_ConcurrentGetDuringSet(t *testing.T) {
	reg := NewRegistry()
	want := newNamedLogger("want")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				got, err := reg.Get()
				if err != nil {
					assert.ErrorIs(t, err, ErrUninitialized)
					continue
				}
				assert.Same(t, want, got)
			}
		}()
	}
	require.NoError(t, reg.Set(want))
	wg.Wait()
}

// TestRegistry_Independent проверяет, что реестры не разделяют состояние.
func TestRegistry_Independent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	require.NoError(t, a.Set(NewNopLogger()))
	assert.False(t, b.IsSet())
}
