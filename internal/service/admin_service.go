package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/validation"
)

// AdminService вход администратора и управление коллекциями CMS.
type AdminService struct {
	cms          *cms.Registry
	tokens       *TokenManager
	passwordHash string
}

// AdminStats агрегаты для главной страницы админки.
type AdminStats struct {
	Workers      int `json:"workers"`
	Employers    int `json:"employers"`
	Jobs         int `json:"jobs"`
	OpenJobs     int `json:"open_jobs"`
	Articles     int `json:"articles"`
	Applications int `json:"applications"`
	Reviews      int `json:"reviews"`
	Accounts     int `json:"accounts"`
	Sessions     int `json:"sessions"`
}

// AdminToken выданный токен администратора.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAdminService создаёт сервис администратора. Пустой passwordHash отключает вход.
func NewAdminService(registry *cms.Registry, tokens *TokenManager, passwordHash string) *AdminService {
	return &AdminService{cms: registry, tokens: tokens, passwordHash: passwordHash}
}

// HashAdminPassword возвращает bcrypt-хеш для ADMIN_PASSWORD_HASH.
func HashAdminPassword(password string) (string, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return "", apperror.Validation(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}
	return string(hash), nil
}

// Login сверяет пароль с хешем и выдаёт токен администратора.
func (s *AdminService) Login(password string) (*AdminToken, error) {
	if s.passwordHash == "" || password == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.IssueAdmin()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}
	return &AdminToken{Token: token, ExpiresAt: exp}, nil
}

// Authorize проверяет токен администратора.
func (s *AdminService) Authorize(token string) error {
	if token == "" {
		return apperror.ErrUnauthorized
	}
	if err := s.tokens.ParseAdmin(token); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeUnauthorized, "недействительный токен администратора")
	}
	return nil
}

// Collections возвращает имена всех коллекций.
func (s *AdminService) Collections() []string {
	return s.cms.Names()
}

// Collection возвращает коллекцию по имени.
func (s *AdminService) Collection(name string) (cms.RawCollection, error) {
	return s.cms.Raw(name)
}

// Stats считает записи в основных коллекциях.
func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	workers, err := s.cms.Workers.Load(ctx)
	if err != nil {
		return nil, err
	}
	employers, err := s.cms.Employers.Count(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.cms.Jobs.Load(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.cms.Articles.Count(ctx)
	if err != nil {
		return nil, err
	}
	applications, err := s.cms.Applications.Count(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.cms.Reviews.Count(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.cms.Accounts.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{
		Workers:      len(workers),
		Employers:    employers,
		Jobs:         len(jobs),
		Articles:     articles,
		Applications: applications,
		Reviews:      reviews,
		Accounts:     accounts,
	}
	for _, j := range jobs {
		if j.Status == models.JobStatusOpen {
			stats.OpenJobs++
		}
	}
	return stats, nil
}
