package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
	"github.com/ignatzorin/kerjaku-backend/internal/validation"
)

// Definition описывает коллекцию: имя, ключ хранения, начальные данные и доступ к id записи.
type Definition[T any] struct {
	Name string
	Key  string
	Seed func() []T
	ID   func(*T) *string
	// Validate проверяет запись перед добавлением и сохранением, может быть nil.
	Validate func(T) error
	// Required обязательные поля JSON-записи для массового импорта.
	Required []string
	// AfterWrite вызывается после каждого сохранённого изменения со старым и новым содержимым.
	AfterWrite func(ctx context.Context, before, after []T) error
}

// Collection коллекция записей, которая читается и сохраняется в хранилище целиком.
type Collection[T any] struct {
	def Definition[T]
	kv  storage.KV
	mu  sync.Mutex
}

// NewCollection создаёт коллекцию поверх хранилища ключ-значение.
func NewCollection[T any](kv storage.KV, def Definition[T]) *Collection[T] {
	if def.Seed == nil {
		def.Seed = func() []T { return nil }
	}
	return &Collection[T]{def: def, kv: kv}
}

func (c *Collection[T]) Name() string { return c.def.Name }

func (c *Collection[T]) Key() string { return c.def.Key }

// Load возвращает коллекцию. Если ключа нет, коллекция заполняется начальными данными
// и сразу сохраняется; ошибка этой записи возвращается. Повреждённое значение и ошибка
// чтения дают начальные данные, а сохранённые байты не перезаписываются.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if apperror.IsStorage(err) {
		return nil, err
	}
	if err != nil {
		logger.Warn("cms: не удалось прочитать коллекцию, используем начальные данные", logrus.Fields{
			"collection": c.def.Name,
			"error":      err.Error(),
		})
		return c.seed(), nil
	}
	return items, nil
}

// Save заменяет коллекцию целиком.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if err := c.validateAll(items); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	before, err := c.previous(ctx)
	if err != nil {
		return err
	}
	return c.commit(ctx, before, items)
}

// Add добавляет запись в конец. Пустой id заполняется UUID, занятый id отклоняется.
func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	return c.insert(ctx, item, false)
}

// Prepend как Add, но ставит запись в начало коллекции.
func (c *Collection[T]) Prepend(ctx context.Context, item T) (T, error) {
	return c.insert(ctx, item, true)
}

func (c *Collection[T]) insert(ctx context.Context, item T, front bool) (T, error) {
	var zero T

	id := c.def.ID(&item)
	if strings.TrimSpace(*id) == "" {
		*id = uuid.NewString()
	}
	if err := validation.ValidateRecordID(*id); err != nil {
		return zero, apperror.Validation(err)
	}
	if err := c.validate(item); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.loadForWrite(ctx)
	if err != nil {
		return zero, err
	}
	if c.indexOf(items, *id) >= 0 {
		return zero, apperror.New(apperror.ErrCodeConflict, fmt.Sprintf("запись с id %s уже существует", *id))
	}

	next := make([]T, 0, len(items)+1)
	if front {
		next = append(append(next, item), items...)
	} else {
		next = append(append(next, items...), item)
	}
	if err := c.commit(ctx, items, next); err != nil {
		return zero, err
	}
	return item, nil
}

// Update применяет patch к записи с указанным id. Изменить id через patch нельзя.
func (c *Collection[T]) Update(ctx context.Context, id string, patch func(*T) error) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.loadForWrite(ctx)
	if err != nil {
		return zero, err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return zero, apperror.ErrRecordNotFound
	}

	updated := items[i]
	if err := patch(&updated); err != nil {
		return zero, err
	}
	*c.def.ID(&updated) = id
	if err := c.validate(updated); err != nil {
		return zero, err
	}

	next := append([]T(nil), items...)
	next[i] = updated
	if err := c.commit(ctx, items, next); err != nil {
		return zero, err
	}
	return updated, nil
}

// Remove удаляет запись по id.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.loadForWrite(ctx)
	if err != nil {
		return err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return apperror.ErrRecordNotFound
	}

	next := make([]T, 0, len(items)-1)
	next = append(append(next, items[:i]...), items[i+1:]...)
	return c.commit(ctx, items, next)
}

// Find ищет запись по id.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, error) {
	var zero T

	items, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}
	if i := c.indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, apperror.ErrRecordNotFound
}

// Reset возвращает коллекцию к начальным данным.
func (c *Collection[T]) Reset(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before, err := c.previous(ctx)
	if err != nil {
		return nil, err
	}
	items := c.seed()
	if err := c.commit(ctx, before, items); err != nil {
		return nil, err
	}
	return items, nil
}

// load читает коллекцию; при отсутствии ключа сохраняет начальные данные.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, found, err := c.kv.Load(ctx, c.def.Key)
	if err != nil {
		return nil, err
	}
	if !found {
		items := c.seed()
		if err := c.persist(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("cms: повреждённая коллекция %s: %w", c.def.Name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// loadForWrite как load, но ошибка чтения прерывает изменение, а битое значение заменяется начальными данными.
func (c *Collection[T]) loadForWrite(ctx context.Context) ([]T, error) {
	raw, found, err := c.kv.Load(ctx, c.def.Key)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось прочитать коллекцию "+c.def.Name)
	}
	if !found {
		return c.seed(), nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("cms: повреждённая коллекция будет перезаписана", logrus.Fields{
			"collection": c.def.Name,
			"error":      err.Error(),
		})
		return c.seed(), nil
	}
	return items, nil
}

// previous читает содержимое перед полной заменой, только если его ждёт AfterWrite.
func (c *Collection[T]) previous(ctx context.Context) ([]T, error) {
	if c.def.AfterWrite == nil {
		return nil, nil
	}
	return c.loadForWrite(ctx)
}

// commit сохраняет новое содержимое и вызывает AfterWrite.
func (c *Collection[T]) commit(ctx context.Context, before, after []T) error {
	if err := c.persist(ctx, after); err != nil {
		return err
	}
	if c.def.AfterWrite == nil {
		return nil
	}
	if err := c.def.AfterWrite(ctx, before, after); err != nil {
		return fmt.Errorf("cms: %s: %w", c.def.Name, err)
	}
	return nil
}

func (c *Collection[T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cms: marshal %s: %w", c.def.Name, err)
	}
	if err := c.kv.Save(ctx, c.def.Key, raw); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось сохранить коллекцию "+c.def.Name)
	}
	return nil
}

func (c *Collection[T]) seed() []T {
	items := c.def.Seed()
	if items == nil {
		items = []T{}
	}
	return items
}

func (c *Collection[T]) indexOf(items []T, id string) int {
	for i := range items {
		if *c.def.ID(&items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) validate(item T) error {
	if c.def.Validate == nil {
		return nil
	}
	err := c.def.Validate(item)
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Validation(err)
}

// validateAll проверяет записи и уникальность непустых id.
func (c *Collection[T]) validateAll(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		id := *c.def.ID(&items[i])
		if strings.TrimSpace(id) == "" {
			return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("запись %d: id не может быть пустым", i))
		}
		if err := validation.ValidateRecordID(id); err != nil {
			return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("запись %d: %v", i, err))
		}
		if _, dup := seen[id]; dup {
			return apperror.New(apperror.ErrCodeValidation, "повторяющийся id: "+id)
		}
		seen[id] = struct{}{}
		if err := c.validate(items[i]); err != nil {
			return err
		}
	}
	return nil
}
