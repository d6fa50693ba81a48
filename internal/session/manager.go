package session

import (
	"context"
	"fmt"

	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

// Manager открывает Store браузерного контекста поверх общего хранилища.
// Состояние не кэшируется: каждый Get перечитывает запись, поэтому очистка
// хранилища извне сразу делает контекст анонимным.
type Manager struct {
	kv storage.KV
}

func NewManager(kv storage.KV) *Manager {
	return &Manager{kv: kv}
}

// Get возвращает сессию контекста, прочитанную из хранилища.
func (m *Manager) Get(ctx context.Context, contextID string) *Store {
	return Open(ctx, NewKVPersister(m.kv, Key(contextID)))
}

// Stored считает сохранённые авторизованные сессии.
func (m *Manager) Stored(ctx context.Context) (int, error) {
	lister, ok := m.kv.(storage.Lister)
	if !ok {
		return 0, fmt.Errorf("session: хранилище %T не умеет перечислять ключи", m.kv)
	}
	keys, err := lister.Keys(ctx, KeyPrefix+":")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
