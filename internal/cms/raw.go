package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

// RawCollection доступ к коллекции через JSON, нужен админке и CLI,
// которые работают с коллекциями по имени.
type RawCollection interface {
	Name() string
	Key() string
	LoadJSON(ctx context.Context) (json.RawMessage, error)
	SaveJSON(ctx context.Context, payload []byte) error
	AddJSON(ctx context.Context, payload []byte) (json.RawMessage, error)
	PatchJSON(ctx context.Context, id string, payload []byte) (json.RawMessage, error)
	Remove(ctx context.Context, id string) error
	ResetJSON(ctx context.Context) (json.RawMessage, error)
	Count(ctx context.Context) (int, error)
}

func (c *Collection[T]) LoadJSON(ctx context.Context) (json.RawMessage, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return marshalRaw(items)
}

// SaveJSON проверяет массив по схеме коллекции и сохраняет его целиком.
func (c *Collection[T]) SaveJSON(ctx context.Context, payload []byte) error {
	if err := validateSchema(c.arraySchema(), payload); err != nil {
		return err
	}

	var items []T
	if err := decodeStrict(payload, &items); err != nil {
		return err
	}
	return c.Save(ctx, items)
}

// AddJSON добавляет одну запись из JSON-объекта.
func (c *Collection[T]) AddJSON(ctx context.Context, payload []byte) (json.RawMessage, error) {
	if err := validateSchema(c.itemSchema(false), payload); err != nil {
		return nil, err
	}

	var item T
	if err := decodeStrict(payload, &item); err != nil {
		return nil, err
	}
	added, err := c.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	return marshalRaw(added)
}

// PatchJSON накладывает поля объекта на существующую запись. Отсутствующие поля не меняются.
func (c *Collection[T]) PatchJSON(ctx context.Context, id string, payload []byte) (json.RawMessage, error) {
	if err := validateSchema(objectSchema, payload); err != nil {
		return nil, err
	}

	updated, err := c.Update(ctx, id, func(item *T) error {
		return decodeStrict(payload, item)
	})
	if err != nil {
		return nil, err
	}
	return marshalRaw(updated)
}

func (c *Collection[T]) ResetJSON(ctx context.Context) (json.RawMessage, error) {
	items, err := c.Reset(ctx)
	if err != nil {
		return nil, err
	}
	return marshalRaw(items)
}

func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

var objectSchema = map[string]interface{}{"type": "object"}

// itemSchema схема одной записи; для импорта id обязателен.
func (c *Collection[T]) itemSchema(requireID bool) map[string]interface{} {
	required := make([]interface{}, 0, len(c.def.Required)+1)
	if requireID {
		required = append(required, "id")
	}
	for _, field := range c.def.Required {
		required = append(required, field)
	}

	schema := map[string]interface{}{"type": "object"}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (c *Collection[T]) arraySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":  "array",
		"items": c.itemSchema(true),
	}
}

func validateSchema(schema map[string]interface{}, payload []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, "некорректный JSON")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return apperror.New(apperror.ErrCodeValidation, strings.Join(msgs, "; "))
}

// decodeStrict декодирует JSON, неизвестные поля считаются ошибкой.
func decodeStrict(payload []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, fmt.Sprintf("некорректные данные: %v", err))
	}
	return nil
}

func marshalRaw(v interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cms: marshal: %w", err)
	}
	return raw, nil
}
