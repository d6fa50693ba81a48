package validation

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength минимальная длина пароля при регистрации.
const MinPasswordLength = 6

// ValidatePassword проверяет пароль при регистрации.
// Требования:
// - Минимум 6 символов
// - Хотя бы одна буква и одна цифра
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasLetter {
		return fmt.Errorf("пароль должен содержать хотя бы одну букву")
	}
	if !hasNumber {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}

	return nil
}

// ValidatePasswordConfirmation проверяет совпадение пароля и подтверждения.
func ValidatePasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("пароли не совпадают")
	}
	return nil
}
