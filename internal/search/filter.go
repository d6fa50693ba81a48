package search

import (
	"strings"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

// FilterWorkers возвращает работников, прошедших все заданные критерии, в исходном порядке.
func FilterWorkers(workers []models.Worker, criteria WorkerCriteria) []models.Worker {
	c := criteria.Normalize()

	out := make([]models.Worker, 0, len(workers))
	for _, w := range workers {
		if MatchWorker(w, c) {
			out = append(out, w)
		}
	}
	return out
}

// MatchWorker проверяет одного работника против нормализованных критериев.
func MatchWorker(w models.Worker, c WorkerCriteria) bool {
	if c.Text != "" && !containsFold(w.FullName, c.Text) && !containsFold(w.Bio, c.Text) {
		return false
	}
	if c.Location != "" && !containsFold(w.Location, c.Location) {
		return false
	}
	if len(c.Skills) > 0 && !hasAnySkill(w.Skills, c.Skills) {
		return false
	}
	if c.MinRating != nil && w.AverageRating < *c.MinRating {
		return false
	}
	return true
}

// FilterJobs возвращает вакансии, прошедшие все заданные критерии, в исходном порядке.
func FilterJobs(jobs []models.JobPosting, criteria JobCriteria) []models.JobPosting {
	c := criteria.Normalize()

	out := make([]models.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if MatchJob(j, c) {
			out = append(out, j)
		}
	}
	return out
}

// MatchJob проверяет одну вакансию против нормализованных критериев.
func MatchJob(j models.JobPosting, c JobCriteria) bool {
	if c.Text != "" &&
		!containsFold(j.Title, c.Text) &&
		!containsFold(j.Description, c.Text) &&
		!containsFold(j.EmployerName, c.Text) {
		return false
	}
	if c.Location != "" && !containsFold(j.Location, c.Location) {
		return false
	}
	if c.Category != "" && j.SkillCategory != c.Category {
		return false
	}
	if c.Duration != "" && j.DurationType != c.Duration {
		return false
	}
	if c.Status != "" && j.Status != c.Status {
		return false
	}
	return true
}

// containsFold ожидает needle уже в нижнем регистре.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func hasAnySkill(have, want []models.SkillCategory) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
