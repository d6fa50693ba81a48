package valueobject

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

// MaxBudget верхняя граница бюджета вакансии в рупиях.
const MaxBudget int64 = 10_000_000_000

var rupiahPrinter = message.NewPrinter(language.Indonesian)

var durationSuffix = map[models.DurationType]string{
	models.DurationDaily:   "hari",
	models.DurationWeekly:  "minggu",
	models.DurationMonthly: "bulan",
	models.DurationProject: "proyek",
}

// Budget диапазон оплаты в рупиях, Min <= Max.
type Budget struct {
	Min int64
	Max int64
}

// NewBudget проверяет диапазон, введённый работодателем.
func NewBudget(min, max int64) (Budget, error) {
	if min < 0 || max < 0 {
		return Budget{}, apperror.New(apperror.ErrCodeValidation, "бюджет не может быть отрицательным")
	}
	if min > MaxBudget || max > MaxBudget {
		return Budget{}, apperror.New(apperror.ErrCodeValidation, "бюджет превышает допустимый максимум")
	}
	if min > max {
		return Budget{}, apperror.New(apperror.ErrCodeValidation, "минимальный бюджет не может превышать максимальный")
	}
	return Budget{Min: min, Max: max}, nil
}

// BudgetRange нормализует сохранённый диапазон: границы, переданные наоборот, меняются местами.
func BudgetRange(min, max int64) Budget {
	if min > max {
		min, max = max, min
	}
	return Budget{Min: min, Max: max}
}

// BudgetOf возвращает нормализованный бюджет вакансии.
func BudgetOf(job models.JobPosting) Budget {
	return BudgetRange(job.BudgetMin, job.BudgetMax)
}

// Label форматирует диапазон для отображения: "Rp 100.000 – Rp 200.000 / hari".
func (b Budget) Label(duration models.DurationType) string {
	text := FormatRupiah(b.Min)
	if b.Max != b.Min {
		text += " – " + FormatRupiah(b.Max)
	}
	if suffix, ok := durationSuffix[duration]; ok {
		text += " / " + suffix
	}
	return text
}

// FormatRupiah форматирует сумму с индонезийскими разделителями разрядов.
func FormatRupiah(amount int64) string {
	return rupiahPrinter.Sprintf("Rp %d", amount)
}
