package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

func newTestAdmin(t *testing.T) *AdminService {
	t.Helper()
	hash, err := HashAdminPassword("admin123")
	require.NoError(t, err)
	return NewAdminService(newTestRegistry(), newTestTokens(), hash)
}

func TestAdminService_Login(t *testing.T) {
	svc := newTestAdmin(t)

	token, err := svc.Login("admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.NoError(t, svc.Authorize(token.Token))

	_, err = svc.Login("salah123")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login("")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAdminService_LoginDisabledWithoutHash(t *testing.T) {
	svc := NewAdminService(newTestRegistry(), newTestTokens(), "")

	_, err := svc.Login("admin123")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAdminService_Authorize(t *testing.T) {
	svc := newTestAdmin(t)

	assert.ErrorIs(t, svc.Authorize(""), apperror.ErrUnauthorized)
	assert.True(t, apperror.IsUnauthorized(svc.Authorize("garbage")))

	ctxToken, err := newTestTokens().IssueContext("ctx-1")
	require.NoError(t, err)
	assert.True(t, apperror.IsUnauthorized(svc.Authorize(ctxToken)))
}

func TestHashAdminPassword_Validates(t *testing.T) {
	_, err := HashAdminPassword("short")
	assert.True(t, apperror.IsValidation(err))
}

func TestAdminService_Collections(t *testing.T) {
	svc := newTestAdmin(t)

	assert.Contains(t, svc.Collections(), "workers")
	assert.Len(t, svc.Collections(), 12)

	c, err := svc.Collection("faq")
	require.NoError(t, err)
	assert.Equal(t, "kerjaku_cms_faq", c.Key())

	_, err = svc.Collection("orders")
	assert.ErrorIs(t, err, apperror.ErrUnknownCollection)
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	svc := newTestAdmin(t)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Workers)
	assert.Equal(t, 4, stats.Employers)
	assert.Equal(t, 7, stats.Jobs)
	assert.Equal(t, 5, stats.OpenJobs)
	assert.Equal(t, 3, stats.Articles)
	assert.Equal(t, 0, stats.Applications)
	assert.Equal(t, 10, stats.Reviews)
	assert.Equal(t, 0, stats.Accounts)
}
