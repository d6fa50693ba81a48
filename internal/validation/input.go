package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

// Константы валидации
const (
	MinNameLength           = 2
	MaxNameLength           = 100
	MinCompanyNameLength    = 2
	MaxCompanyNameLength    = 150
	MinJobTitleLength       = 5
	MaxJobTitleLength       = 150
	MinJobDescriptionLength = 20
	MaxJobDescriptionLength = 5000
	MaxRequirementsCount    = 20
	MaxRequirementLength    = 200
	MaxLocationLength       = 100
	MaxReviewCommentLength  = 2000
	MaxApplicationMessage   = 1000
	MaxCaptionLength        = 300
	MinRating               = 1
	MaxRating               = 5
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	// Индонезийские мобильные номера: 08xx, +628xx или 628xx, 9-13 цифр после кода.
	phoneRegex = regexp.MustCompile(`^(\+62|62|0)8[0-9]{7,11}$`)
	nameRegex  = regexp.MustCompile(`^[\p{L}0-9\s\-'.,()]+$`)
	// Идентификаторы записей: UUID или slug из демо-данных.
	recordIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateRecordID проверяет, что id записи можно использовать в URL.
func ValidateRecordID(id string) error {
	if !recordIDRegex.MatchString(id) {
		return fmt.Errorf("id %q: допустимы латинские буквы, цифры, '-' и '_', до 64 символов", id)
	}
	return nil
}

// ValidatePhone проверяет индонезийский мобильный номер.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("номер телефона обязателен")
	}
	if !phoneRegex.MatchString(compactPhone(phone)) {
		return fmt.Errorf("номер телефона должен быть в формате 08xx или +628xx")
	}
	return nil
}

// NormalizePhone приводит номер к международному виду без плюса (62812...), как требует wa.me.
func NormalizePhone(phone string) string {
	p := compactPhone(phone)
	switch {
	case strings.HasPrefix(p, "+62"):
		return p[1:]
	case strings.HasPrefix(p, "62"):
		return p
	case strings.HasPrefix(p, "0"):
		return "62" + p[1:]
	}
	return p
}

func compactPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

// ValidatePersonName проверяет имя пользователя или работника.
func ValidatePersonName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("имя обязательно")
	}
	if err := ValidateLength("имя", name, MinNameLength, MaxNameLength); err != nil {
		return err
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("имя содержит недопустимые символы")
	}
	return nil
}

// ValidateCompanyName проверяет название компании работодателя.
func ValidateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("название компании обязательно для работодателя")
	}
	return ValidateLength("название компании", name, MinCompanyNameLength, MaxCompanyNameLength)
}

// ValidateJobTitle проверяет заголовок вакансии.
func ValidateJobTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("заголовок вакансии обязателен")
	}
	return ValidateLength("заголовок вакансии", title, MinJobTitleLength, MaxJobTitleLength)
}

// ValidateJobDescription проверяет описание вакансии.
func ValidateJobDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("описание вакансии обязательно")
	}
	return ValidateLength("описание вакансии", description, MinJobDescriptionLength, MaxJobDescriptionLength)
}

// ValidateLocation проверяет город/район.
func ValidateLocation(location string) error {
	if err := ValidateNonEmpty("локация", location); err != nil {
		return err
	}
	return ValidateLength("локация", strings.TrimSpace(location), 0, MaxLocationLength)
}

// ValidateRequirements проверяет список требований вакансии.
func ValidateRequirements(requirements []string) error {
	if len(requirements) > MaxRequirementsCount {
		return fmt.Errorf("требований не может быть больше %d", MaxRequirementsCount)
	}
	for _, r := range requirements {
		if err := ValidateNonEmpty("требование", r); err != nil {
			return err
		}
		if err := ValidateLength("требование", r, 0, MaxRequirementLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSkillCategory проверяет одну категорию навыка.
func ValidateSkillCategory(skill models.SkillCategory) error {
	if !skill.IsValid() {
		return fmt.Errorf("неизвестная категория навыка: %q", skill)
	}
	return nil
}

// ValidateSkills проверяет, что набор навыков не пуст и состоит из известных категорий.
func ValidateSkills(skills []models.SkillCategory) error {
	if len(skills) == 0 {
		return fmt.Errorf("нужно указать хотя бы один навык")
	}
	for _, s := range skills {
		if err := ValidateSkillCategory(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRating проверяет оценку 1..5.
func ValidateRating(fieldName string, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%s должна быть от %d до %d", fieldName, MinRating, MaxRating)
	}
	return nil
}

// ValidateSubRatings проверяет необязательные детальные оценки.
func ValidateSubRatings(r models.SubRatings) error {
	checks := []struct {
		name  string
		value *int
	}{
		{"оценка качества", r.Quality},
		{"оценка пунктуальности", r.Punctuality},
		{"оценка коммуникации", r.Communication},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := ValidateRating(c.name, *c.value); err != nil {
			return err
		}
	}
	return nil
}
