package models

// AuthUser пользователь текущей сессии браузерного контекста.
type AuthUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Role        Role   `json:"role"`
	Email       string `json:"email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// DisplayName возвращает название компании для работодателя, иначе имя.
func (u AuthUser) DisplayName() string {
	if u.Role == RoleEmployer && u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Name
}
