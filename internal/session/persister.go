package session

import (
	"context"

	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

// KeyPrefix префикс ключа, под которым хранится пользователь браузерного контекста.
const KeyPrefix = "kerjaku_auth_user"

// Key возвращает ключ хранения для контекста.
func Key(contextID string) string {
	return KeyPrefix + ":" + contextID
}

// Persister хранит сериализованного пользователя одной сессии.
type Persister interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, value []byte) error
	Clear(ctx context.Context) error
}

type kvPersister struct {
	kv  storage.KV
	key string
}

// NewKVPersister привязывает Persister к ключу в хранилище ключ-значение.
func NewKVPersister(kv storage.KV, key string) Persister {
	return &kvPersister{kv: kv, key: key}
}

func (p *kvPersister) Get(ctx context.Context) ([]byte, bool, error) {
	return p.kv.Load(ctx, p.key)
}

func (p *kvPersister) Set(ctx context.Context, value []byte) error {
	return p.kv.Save(ctx, p.key, value)
}

func (p *kvPersister) Clear(ctx context.Context) error {
	return p.kv.Delete(ctx, p.key)
}
