package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

// sniffLen сколько байт читается для определения типа файла.
const sniffLen = 512

// ErrUnsupportedMedia файл не фото и не видео из разрешённого списка.
var ErrUnsupportedMedia = errors.New("storage: неподдерживаемый тип файла")

// Форматы, которые принимаются в портфолио.
var mediaTypes = map[string]models.MediaType{
	"image/jpeg":      models.MediaImage,
	"image/png":       models.MediaImage,
	"image/gif":       models.MediaImage,
	"image/webp":      models.MediaImage,
	"video/mp4":       models.MediaVideo,
	"video/quicktime": models.MediaVideo,
	"video/webm":      models.MediaVideo,
}

var ownerDirRegex = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// StoredMedia сохранённый файл портфолио.
type StoredMedia struct {
	Path string
	Size int64
	MIME string
	Type models.MediaType
}

// MediaStorage хранит фото и видео портфолио: <root>/<работник>/<uuid>.<ext>.
type MediaStorage struct {
	rootPath       string
	maxUploadBytes int64
}

func NewMediaStorage(rootPath string, maxUploadMB int64) (*MediaStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &MediaStorage{rootPath: rootPath, maxUploadBytes: maxUploadMB * 1024 * 1024}, nil
}

func (s *MediaStorage) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// Save определяет тип файла по содержимому и сохраняет его в каталог работника.
// Расширение берётся из найденного типа, имя клиента не используется.
func (s *MediaStorage) Save(ctx context.Context, workerID string, r io.Reader) (StoredMedia, error) {
	if err := ctx.Err(); err != nil {
		return StoredMedia{}, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return StoredMedia{}, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return StoredMedia{}, ErrUnsupportedMedia
	}
	mediaType, ok := mediaTypes[kind.MIME.Value]
	if !ok {
		return StoredMedia{}, fmt.Errorf("%w (%s)", ErrUnsupportedMedia, kind.MIME.Value)
	}

	dir := ownerDir(workerID)
	if err := os.MkdirAll(filepath.Join(s.rootPath, dir), 0o755); err != nil {
		return StoredMedia{}, fmt.Errorf("storage: не удалось создать каталог работника: %w", err)
	}

	rel := dir + "/" + uuid.NewString() + "." + kind.Extension
	size, err := writeAtomic(filepath.Join(s.rootPath, filepath.FromSlash(rel)), io.MultiReader(bytes.NewReader(head), r), s.maxUploadBytes)
	if err != nil {
		return StoredMedia{}, err
	}

	return StoredMedia{Path: rel, Size: size, MIME: kind.MIME.Value, Type: mediaType}, nil
}

// Delete удаляет файл, отсутствие файла не ошибка.
func (s *MediaStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// ownerDir оставляет в id работника только безопасные символы.
func ownerDir(workerID string) string {
	dir := ownerDirRegex.ReplaceAllString(workerID, "_")
	if dir == "" || dir == "_" {
		return "unknown"
	}
	return dir
}
