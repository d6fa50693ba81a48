package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTooLarge возвращается, когда содержимое превышает лимит записи.
var ErrTooLarge = errors.New("storage: размер превышает лимит")

// writeAtomic пишет r во временный файл рядом с target и переименовывает его,
// так что читатель видит либо старое, либо новое содержимое целиком.
// limit > 0 ограничивает размер записи.
func writeAtomic(target string, r io.Reader, limit int64) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("storage: не удалось создать временный файл: %w", err)
	}
	tempPath := f.Name()

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	written, err := io.Copy(f, src)
	switch {
	case err != nil:
		err = fmt.Errorf("storage: ошибка записи %s: %w", filepath.Base(target), err)
	case limit > 0 && written > limit:
		err = fmt.Errorf("%w: %d байт", ErrTooLarge, limit)
	default:
		if syncErr := f.Sync(); syncErr != nil {
			err = fmt.Errorf("storage: ошибка синхронизации %s: %w", filepath.Base(target), syncErr)
		}
	}
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("storage: ошибка закрытия файла: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return 0, err
	}

	if err := os.Rename(tempPath, target); err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}
	return written, nil
}
