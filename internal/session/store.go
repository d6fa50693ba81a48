package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

// Store состояние сессии одного браузерного контекста: анонимная или с пользователем.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	user      *models.AuthUser
}

// Open восстанавливает сессию из хранилища. Никогда не падает: битая запись
// или ошибка чтения дают анонимную сессию и предупреждение в логе.
func Open(ctx context.Context, persister Persister) *Store {
	s := &Store{persister: persister}

	raw, found, err := persister.Get(ctx)
	if err != nil {
		logger.Warn("session: не удалось прочитать сессию", logrus.Fields{"error": err.Error()})
		return s
	}
	if !found {
		return s
	}

	var user models.AuthUser
	if err := json.Unmarshal(raw, &user); err != nil {
		logger.Warn("session: повреждённая запись сессии, считаем анонимной", logrus.Fields{"error": err.Error()})
		return s
	}
	s.user = &user
	return s
}

// Login сохраняет пользователя и переводит сессию в авторизованное состояние.
// При ошибке записи состояние не меняется.
func (s *Store) Login(ctx context.Context, user models.AuthUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: marshal user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Set(ctx, raw); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось сохранить сессию")
	}
	s.user = &user
	return nil
}

// Logout удаляет сохранённого пользователя. Сессия становится анонимной даже при ошибке удаления.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := s.persister.Clear(ctx); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось очистить сессию")
	}
	return nil
}

// Current возвращает копию текущего пользователя или nil.
func (s *Store) Current() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// RequireAuth вызывает fn только для авторизованной сессии и сообщает, был ли вызов.
func (s *Store) RequireAuth(fn func(user models.AuthUser)) bool {
	user := s.Current()
	if user == nil {
		return false
	}
	fn(*user)
	return true
}

// RequireRole возвращает пользователя, если у сессии нужная роль.
// Анонимная сессия даёт ErrUnauthorized, другая роль ErrForbidden.
func (s *Store) RequireRole(role models.Role) (models.AuthUser, error) {
	user := s.Current()
	if user == nil {
		return models.AuthUser{}, apperror.ErrUnauthorized
	}
	if role == "" || user.Role != role {
		return models.AuthUser{}, apperror.ErrForbidden
	}
	return *user, nil
}
