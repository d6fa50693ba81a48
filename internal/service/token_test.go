package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenManager {
	return NewTokenManager("context-secret-for-tests-0123456789", "admin-secret-for-tests-0123456789", time.Hour)
}

func TestTokenManager_ContextRoundTrip(t *testing.T) {
	m := newTestTokens()
	id := NewContextID()

	token, err := m.IssueContext(id)
	require.NoError(t, err)

	got, err := m.ParseContext(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	m := newTestTokens()

	ctxToken, err := m.IssueContext("ctx-1")
	require.NoError(t, err)
	adminToken, _, err := m.IssueAdmin()
	require.NoError(t, err)

	assert.ErrorIs(t, m.ParseAdmin(ctxToken), ErrInvalidToken)
	_, err = m.ParseContext(adminToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("another-context-secret-0123456789", "another-admin-secret-0123456789", time.Hour)
	_, err = other.ParseContext(ctxToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseContext("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_AdminExpiry(t *testing.T) {
	m := NewTokenManager("context-secret-for-tests-0123456789", "admin-secret-for-tests-0123456789", -time.Minute)

	token, exp, err := m.IssueAdmin()
	require.NoError(t, err)
	assert.True(t, exp.Before(time.Now()))
	assert.ErrorIs(t, m.ParseAdmin(token), ErrInvalidToken)

	valid := newTestTokens()
	token, _, err = valid.IssueAdmin()
	require.NoError(t, err)
	assert.NoError(t, valid.ParseAdmin(token))
}
