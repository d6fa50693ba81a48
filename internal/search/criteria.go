package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

// Границы рейтинга работника.
const (
	MinRatingFloor   = 0.0
	MinRatingCeiling = 5.0
)

// WorkerCriteria фильтр каталога работников. Пустые поля не ограничивают выборку.
type WorkerCriteria struct {
	Text      string
	Location  string
	Skills    []models.SkillCategory
	MinRating *float64
}

// JobCriteria фильтр каталога вакансий. Пустые поля не ограничивают выборку.
type JobCriteria struct {
	Text     string
	Location string
	Category models.SkillCategory
	Duration models.DurationType
	Status   models.JobStatus
}

// Normalize приводит критерии к каноничному виду: текст в нижнем регистре без пробелов по краям,
// рейтинг зажат в [0, 5], NaN отбрасывается, пустые навыки удаляются.
func (c WorkerCriteria) Normalize() WorkerCriteria {
	out := WorkerCriteria{
		Text:     normalizeText(c.Text),
		Location: normalizeText(c.Location),
	}

	for _, s := range c.Skills {
		s = models.SkillCategory(normalizeText(string(s)))
		if s != "" {
			out.Skills = append(out.Skills, s)
		}
	}

	if c.MinRating != nil && !math.IsNaN(*c.MinRating) {
		r := math.Min(math.Max(*c.MinRating, MinRatingFloor), MinRatingCeiling)
		out.MinRating = &r
	}

	return out
}

// Normalize приводит критерии вакансий к каноничному виду.
func (c JobCriteria) Normalize() JobCriteria {
	return JobCriteria{
		Text:     normalizeText(c.Text),
		Location: normalizeText(c.Location),
		Category: models.SkillCategory(normalizeText(string(c.Category))),
		Duration: models.DurationType(normalizeText(string(c.Duration))),
		Status:   models.JobStatus(normalizeText(string(c.Status))),
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseSkills разбирает список навыков через запятую и отвергает неизвестные.
func ParseSkills(raw string) ([]models.SkillCategory, error) {
	var skills []models.SkillCategory
	for _, part := range strings.Split(raw, ",") {
		part = normalizeText(part)
		if part == "" {
			continue
		}
		skill := models.SkillCategory(part)
		if !skill.IsValid() {
			return nil, fmt.Errorf("неизвестная категория навыка: %q", part)
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// ParseMinRating разбирает порог рейтинга. Пустая строка означает отсутствие ограничения,
// нечисловое значение и значение вне [0, 5] отвергаются.
func ParseMinRating(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("min_rating должен быть числом")
	}
	if v < MinRatingFloor || v > MinRatingCeiling {
		return nil, fmt.Errorf("min_rating должен быть от %.0f до %.0f", MinRatingFloor, MinRatingCeiling)
	}
	return &v, nil
}

// ParseCategory разбирает одну категорию навыка, пустая строка допустима.
func ParseCategory(raw string) (models.SkillCategory, error) {
	c := models.SkillCategory(normalizeText(raw))
	if c != "" && !c.IsValid() {
		return "", fmt.Errorf("неизвестная категория навыка: %q", raw)
	}
	return c, nil
}

// ParseDuration разбирает тип длительности, пустая строка допустима.
func ParseDuration(raw string) (models.DurationType, error) {
	d := models.DurationType(normalizeText(raw))
	if d != "" && !d.IsValid() {
		return "", fmt.Errorf("неизвестный тип длительности: %q", raw)
	}
	return d, nil
}

// ParseStatus разбирает статус вакансии, пустая строка допустима.
func ParseStatus(raw string) (models.JobStatus, error) {
	s := models.JobStatus(normalizeText(raw))
	if s != "" && !s.IsValid() {
		return "", fmt.Errorf("неизвестный статус вакансии: %q", raw)
	}
	return s, nil
}
