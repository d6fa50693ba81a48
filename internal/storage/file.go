package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore хранит каждый ключ в отдельном JSON-файле внутри каталога.
type FileStore struct {
	rootPath string
	mu       sync.Mutex
}

// NewFileStore создаёт файловое хранилище.
func NewFileStore(rootPath string) (*FileStore, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &FileStore{rootPath: rootPath}, nil
}

func (s *FileStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: не удалось прочитать ключ %s: %w", key, err)
	}
	return data, true, nil
}

// Save пишет во временный файл и переименовывает его, чтобы читатель не увидел половину значения.
func (s *FileStore) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := writeAtomic(s.pathFor(key), bytes.NewReader(value), 0); err != nil {
		return fmt.Errorf("storage: ключ %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить ключ %s: %w", key, err)
	}
	return nil
}

// Keys читает имена файлов каталога и возвращает ключи с заданным префиксом.
func (s *FileStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось прочитать каталог %s: %w", s.rootPath, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil || !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// pathFor экранирует ключ, чтобы ':' и '/' не выходили за пределы каталога.
func (s *FileStore) pathFor(key string) string {
	return filepath.Join(s.rootPath, url.PathEscape(key)+".json")
}
