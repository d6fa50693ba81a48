package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenKindContext = "context"
	tokenKindAdmin   = "admin"
)

// ErrInvalidToken возвращается для подделанного, просроченного или чужого токена.
var ErrInvalidToken = errors.New("token: недействительный токен")

// TokenManager выпускает и проверяет JWT браузерного контекста и администратора.
type TokenManager struct {
	contextSecret []byte
	adminSecret   []byte
	adminTTL      time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(contextSecret, adminSecret string, adminTTL time.Duration) *TokenManager {
	return &TokenManager{
		contextSecret: []byte(contextSecret),
		adminSecret:   []byte(adminSecret),
		adminTTL:      adminTTL,
	}
}

// NewContextID генерирует идентификатор нового браузерного контекста.
func NewContextID() string {
	return uuid.NewString()
}

// IssueContext подписывает идентификатор контекста. Токен не истекает, как и сессия.
func (m *TokenManager) IssueContext(contextID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  contextID,
		Audience: jwt.ClaimStrings{tokenKindContext},
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.contextSecret)
	if err != nil {
		return "", fmt.Errorf("token: не удалось подписать токен контекста: %w", err)
	}
	return signed, nil
}

// ParseContext проверяет токен контекста и возвращает его идентификатор.
func (m *TokenManager) ParseContext(token string) (string, error) {
	claims, err := m.parse(token, m.contextSecret, tokenKindContext)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// IssueAdmin выпускает токен администратора с ограниченным сроком жизни.
func (m *TokenManager) IssueAdmin() (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.adminTTL)

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		Audience:  jwt.ClaimStrings{tokenKindAdmin},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.adminSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: не удалось подписать токен администратора: %w", err)
	}
	return signed, exp, nil
}

// ParseAdmin проверяет токен администратора.
func (m *TokenManager) ParseAdmin(token string) error {
	_, err := m.parse(token, m.adminSecret, tokenKindAdmin)
	return err
}

func (m *TokenManager) parse(token string, secret []byte, kind string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
