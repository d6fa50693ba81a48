package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
	"github.com/ignatzorin/kerjaku-backend/internal/validation"
)

// AuthService регистрирует и авторизует пользователей браузерного контекста.
// Учётные данные не проверяются: вход симулирует клиентскую авторизацию.
type AuthService struct {
	cms *cms.Registry
	now func() time.Time

	// mu сериализует поиск и создание учётных записей по телефону.
	mu sync.Mutex
}

// RegisterInput содержит данные формы регистрации.
type RegisterInput struct {
	Name            string
	Phone           string
	Email           string
	Password        string
	PasswordConfirm string
	Role            models.Role
	CompanyName     string
	// Location и Skills публикуют профиль работника сразу после регистрации.
	Location string
	Skills   []models.SkillCategory
}

// LoginInput содержит данные формы входа.
type LoginInput struct {
	Phone    string
	Password string
	Role     models.Role
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(registry *cms.Registry) *AuthService {
	return &AuthService{cms: registry, now: time.Now}
}

// Register проверяет форму, создаёт пользователя и авторизует сессию.
func (s *AuthService) Register(ctx context.Context, store *session.Store, in RegisterInput) (*models.AuthUser, error) {
	if err := s.validateRegister(in); err != nil {
		return nil, apperror.Validation(err)
	}

	phone := validation.NormalizePhone(in.Phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found, err := s.findAccount(ctx, in.Role, phone); err != nil {
		return nil, err
	} else if found {
		return nil, apperror.New(apperror.ErrCodeConflict, "номер телефона уже зарегистрирован")
	}
	if _, found, err := s.findProfile(ctx, in.Role, phone); err != nil {
		return nil, err
	} else if found {
		return nil, apperror.New(apperror.ErrCodeConflict, "номер телефона уже зарегистрирован")
	}

	user := models.AuthUser{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(in.Name),
		Phone: phone,
		Role:  in.Role,
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
	}
	if in.Role == models.RoleEmployer {
		user.CompanyName = strings.TrimSpace(in.CompanyName)
	}

	if _, err := s.cms.Accounts.Add(ctx, user); err != nil {
		return nil, err
	}
	if err := s.publishProfile(ctx, user, in); err != nil {
		if rmErr := s.cms.Accounts.Remove(ctx, user.ID); rmErr != nil {
			logger.Error("auth: не удалось откатить учётную запись", logrus.Fields{"user_id": user.ID, "error": rmErr.Error()})
		}
		return nil, err
	}
	if err := store.Login(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("auth: пользователь зарегистрирован", logrus.Fields{"user_id": user.ID, "role": user.Role})
	return &user, nil
}

// Login авторизует сессию. Телефон ищется среди учётных записей, затем среди
// опубликованных профилей; новый телефон получает учётную запись, чтобы id не менялся между входами.
func (s *AuthService) Login(ctx context.Context, store *session.Store, in LoginInput) (*models.AuthUser, error) {
	if err := validation.ValidateNonEmpty("телефон", in.Phone); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateNonEmpty("пароль", in.Password); err != nil {
		return nil, apperror.Validation(err)
	}
	if !in.Role.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "роль должна быть worker или employer")
	}

	phone := validation.NormalizePhone(in.Phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, found, err := s.findAccount(ctx, in.Role, phone)
	if err != nil {
		return nil, err
	}
	if !found {
		if user, err = s.createAccount(ctx, in.Role, phone); err != nil {
			return nil, err
		}
	}

	if err := store.Login(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout завершает сессию.
func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	return store.Logout(ctx)
}

func (s *AuthService) validateRegister(in RegisterInput) error {
	if err := validation.ValidatePersonName(in.Name); err != nil {
		return err
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return err
	}
	if err := validation.ValidatePasswordConfirmation(in.Password, in.PasswordConfirm); err != nil {
		return err
	}
	if !in.Role.IsValid() {
		return fmt.Errorf("роль должна быть worker или employer")
	}
	if in.Role == models.RoleEmployer {
		if err := validation.ValidateCompanyName(in.CompanyName); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.Email) != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return err
		}
	}
	if len(in.Skills) > 0 {
		if err := validation.ValidateSkills(in.Skills); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.Location) != "" {
		return validation.ValidateLocation(in.Location)
	}
	return nil
}

// publishProfile создаёт карточку работника или работодателя для нового пользователя.
// Работник без навыков не публикуется.
func (s *AuthService) publishProfile(ctx context.Context, user models.AuthUser, in RegisterInput) error {
	now := s.now().UTC()

	switch user.Role {
	case models.RoleWorker:
		if len(in.Skills) == 0 {
			return nil
		}
		_, err := s.cms.Workers.Add(ctx, models.Worker{
			ID:          user.ID,
			FullName:    user.Name,
			Phone:       user.Phone,
			Location:    strings.TrimSpace(in.Location),
			Skills:      in.Skills,
			Portfolio:   []models.PortfolioItem{},
			IsAvailable: true,
			CreatedAt:   now,
		})
		return err

	case models.RoleEmployer:
		_, err := s.cms.Employers.Add(ctx, models.Employer{
			ID:          user.ID,
			CompanyName: user.CompanyName,
			ContactName: user.Name,
			Phone:       user.Phone,
			Email:       user.Email,
			Location:    strings.TrimSpace(in.Location),
			CreatedAt:   now,
		})
		return err
	}
	return nil
}

// findAccount ищет учётную запись роли по нормализованному телефону.
func (s *AuthService) findAccount(ctx context.Context, role models.Role, phone string) (models.AuthUser, bool, error) {
	accounts, err := s.cms.Accounts.Load(ctx)
	if err != nil {
		return models.AuthUser{}, false, err
	}
	for _, a := range accounts {
		if a.Role == role && validation.NormalizePhone(a.Phone) == phone {
			return a, true, nil
		}
	}
	return models.AuthUser{}, false, nil
}

// createAccount заводит учётную запись для первого входа: id и имя берутся из
// опубликованного профиля, если он есть.
func (s *AuthService) createAccount(ctx context.Context, role models.Role, phone string) (models.AuthUser, error) {
	user, found, err := s.findProfile(ctx, role, phone)
	if err != nil {
		return models.AuthUser{}, err
	}
	if !found {
		user = models.AuthUser{ID: uuid.NewString(), Name: phone, Phone: phone, Role: role}
	}
	return s.cms.Accounts.Add(ctx, user)
}

// findProfile ищет опубликованный профиль роли по нормализованному телефону.
func (s *AuthService) findProfile(ctx context.Context, role models.Role, phone string) (models.AuthUser, bool, error) {
	switch role {
	case models.RoleWorker:
		workers, err := s.cms.Workers.Load(ctx)
		if err != nil {
			return models.AuthUser{}, false, err
		}
		for _, w := range workers {
			if validation.NormalizePhone(w.Phone) == phone {
				return models.AuthUser{ID: w.ID, Name: w.FullName, Phone: phone, Role: role}, true, nil
			}
		}
	case models.RoleEmployer:
		employers, err := s.cms.Employers.Load(ctx)
		if err != nil {
			return models.AuthUser{}, false, err
		}
		for _, e := range employers {
			if validation.NormalizePhone(e.Phone) == phone {
				name := e.ContactName
				if name == "" {
					name = e.CompanyName
				}
				return models.AuthUser{
					ID: e.ID, Name: name, Phone: phone, Role: role,
					Email: e.Email, CompanyName: e.CompanyName,
				}, true, nil
			}
		}
	}
	return models.AuthUser{}, false, nil
}
