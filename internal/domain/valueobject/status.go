package valueobject

import (
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

// ValidateJobTransition проверяет новый статус вакансии и допустимость перехода.
func ValidateJobTransition(from, to models.JobStatus) error {
	if !to.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "неизвестный статус вакансии")
	}
	if !from.CanTransitionTo(to) {
		return apperror.New(apperror.ErrCodeValidation, "недопустимый переход статуса: "+string(from)+" -> "+string(to))
	}
	return nil
}
