package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestRegistry() *cms.Registry {
	return cms.NewRegistry(storage.NewMemoryStore())
}

func anonymousSession(t *testing.T) *session.Store {
	t.Helper()
	kv := storage.NewMemoryStore()
	return session.Open(context.Background(), session.NewKVPersister(kv, session.Key("test")))
}

func sessionAs(t *testing.T, user models.AuthUser) *session.Store {
	t.Helper()
	s := anonymousSession(t)
	require.NoError(t, s.Login(context.Background(), user))
	return s
}

// flakyKV отказывает в записи выбранных ключей.
type flakyKV struct {
	storage.KV
	failSave map[string]bool
}

func (f *flakyKV) Save(ctx context.Context, key string, value []byte) error {
	if f.failSave[key] {
		return errors.New("disk full")
	}
	return f.KV.Save(ctx, key, value)
}

var (
	budiUser  = models.AuthUser{ID: "worker-budi-santoso", Name: "Budi Santoso", Phone: "6281234567801", Role: models.RoleWorker}
	majuUser  = models.AuthUser{ID: "employer-maju-jaya", Name: "Hendra", Phone: "6281298765401", Role: models.RoleEmployer, CompanyName: "PT Maju Jaya Konstruksi"}
	griyaUser = models.AuthUser{ID: "employer-griya-asri", Name: "Sari", Phone: "6281298765403", Role: models.RoleEmployer, CompanyName: "Griya Asri Residence"}
)
