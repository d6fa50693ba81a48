package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore хранит значения в таблице kv_store. Работает поверх postgres и sqlite.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore создаёт хранилище поверх открытого соединения.
// Таблица создаётся миграциями пакета db.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	var value string
	query := s.db.Rebind(`SELECT kv_value FROM kv_store WHERE kv_key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage: не удалось прочитать ключ %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO kv_store (kv_key, kv_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (kv_key) DO UPDATE SET kv_value = excluded.kv_value, updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("storage: не удалось сохранить ключ %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := s.db.Rebind(`DELETE FROM kv_store WHERE kv_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("storage: не удалось удалить ключ %s: %w", key, err)
	}
	return nil
}

// Keys возвращает все ключи с заданным префиксом.
func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var candidates []string
	query := s.db.Rebind(`SELECT kv_key FROM kv_store WHERE kv_key LIKE ? ORDER BY kv_key`)
	if err := s.db.SelectContext(ctx, &candidates, query, prefix+"%"); err != nil {
		return nil, fmt.Errorf("storage: не удалось получить ключи: %w", err)
	}

	// '_' в LIKE означает любой символ, поэтому префикс проверяется ещё раз.
	keys := candidates[:0]
	for _, k := range candidates {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
