// Package testutil содержит общие утилиты для тестирования.
package testutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStderr выполняет fn, перехватывая os.Stderr, и возвращает вывод.
// Backend пишет в stderr предупреждения о сбоях handler-а и о fallback-ах
// writer-а, поэтому тесты проверяют их через этот helper.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}

// CaptureStdout выполняет fn, перехватывая os.Stdout, и возвращает вывод.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	orig := *target
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe")

	*target = w
	defer func() { *target = orig }()

	fn()

	_ = w.Close() //nolint:errcheck // test helper pipe close

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err, "не удалось прочитать перехваченный вывод")
	return buf.String()
}
