package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func pngBytes(size int) []byte {
	return append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, size)...)
}

func TestMediaStorage_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ms, err := NewMediaStorage(root, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1024*1024), ms.MaxUploadBytes())

	content := pngBytes(1000)
	saved, err := ms.Save(ctx, "worker-budi-santoso", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), saved.Size)
	assert.Equal(t, models.MediaImage, saved.Type)
	assert.Equal(t, "image/png", saved.MIME)
	assert.True(t, strings.HasPrefix(saved.Path, "worker-budi-santoso/"), saved.Path)
	assert.True(t, strings.HasSuffix(saved.Path, ".png"), saved.Path)

	stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(saved.Path)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	require.NoError(t, ms.Delete(ctx, saved.Path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(saved.Path)))
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление не ошибка
	assert.NoError(t, ms.Delete(ctx, saved.Path))
}

func TestMediaStorage_BackToBackSavesGetDistinctNames(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ms, err := NewMediaStorage(root, 1)
	require.NoError(t, err)

	first, err := ms.Save(ctx, "worker-1", bytes.NewReader(pngBytes(10)))
	require.NoError(t, err)
	second, err := ms.Save(ctx, "worker-1", bytes.NewReader(pngBytes(10)))
	require.NoError(t, err)
	assert.NotEqual(t, first.Path, second.Path)

	entries, err := os.ReadDir(filepath.Join(root, "worker-1"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMediaStorage_RejectsUnsupported(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ms, err := NewMediaStorage(root, 1)
	require.NoError(t, err)

	_, err = ms.Save(ctx, "worker-1", strings.NewReader("bukan gambar sama sekali"))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	// PDF распознаётся, но в портфолио не принимается
	_, err = ms.Save(ctx, "worker-1", strings.NewReader("%PDF-1.4 dokumen"))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = os.Stat(filepath.Join(root, "worker-1"))
	assert.True(t, os.IsNotExist(err))
}

func TestMediaStorage_RejectsOversized(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ms, err := NewMediaStorage(root, 1)
	require.NoError(t, err)

	_, err = ms.Save(ctx, "worker-1", bytes.NewReader(pngBytes(1024*1024)))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(filepath.Join(root, "worker-1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMediaStorage_SanitizesOwner(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ms, err := NewMediaStorage(root, 1)
	require.NoError(t, err)

	saved, err := ms.Save(ctx, "../../etc", bytes.NewReader(pngBytes(4)))
	require.NoError(t, err)
	assert.NotContains(t, saved.Path, "..")

	abs, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(saved.Path)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(abs, root))
}
