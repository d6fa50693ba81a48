package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidKey возвращается для пустого ключа.
var ErrInvalidKey = errors.New("storage: ключ не может быть пустым")

// KV небольшое хранилище ключ-значение, через которое работают сессии и CMS.
// Load возвращает found=false, если ключа нет.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Lister перечисляет ключи по префиксу. Реализуют все хранилища пакета.
type Lister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
