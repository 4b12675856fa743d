package lock

import (
	"context"
	"time"
)

// NoopLock — заглушка для локального запуска без Redis и для тестов.
// Мок-хранилище однопоточное, межпроцессная блокировка ему не нужна.
type NoopLock struct{}

func (NoopLock) Lock(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

func (NoopLock) Unlock(_ context.Context, _ string) error {
	return nil
}
