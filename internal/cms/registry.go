package cms

import (
	"errors"
	"sort"

	"github.com/ignatzorin/kerjaku-backend/internal/domain/valueobject"
	"github.com/ignatzorin/kerjaku-backend/internal/mockdata"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
	"github.com/ignatzorin/kerjaku-backend/internal/validation"
)

// Ключи хранения коллекций.
const (
	KeyArticles     = "kerjaku_cms_articles"
	KeyEmployers    = "kerjaku_cms_employers"
	KeyJobs         = "kerjaku_cms_jobs"
	KeyWorkers      = "kerjaku_cms_workers"
	KeySkills       = "kerjaku_cms_skills"
	KeyFAQ          = "kerjaku_cms_faq"
	KeyPages        = "kerjaku_cms_pages"
	KeySettings     = "kerjaku_cms_settings"
	KeyTrainings    = "kerjaku_cms_trainings"
	KeyReviews      = "kerjaku_reviews"
	KeyApplications = "kerjaku_applications"
	KeyAccounts     = "kerjaku_accounts"
)

// Registry все коллекции приложения.
type Registry struct {
	Articles     *Collection[models.Article]
	Employers    *Collection[models.Employer]
	Jobs         *Collection[models.JobPosting]
	Workers      *Collection[models.Worker]
	Skills       *Collection[models.SkillGroup]
	FAQ          *Collection[models.FAQItem]
	Pages        *Collection[models.PageBlock]
	Settings     *Collection[models.SiteSetting]
	Trainings    *Collection[models.Training]
	Reviews      *Collection[models.Review]
	Applications *Collection[models.Application]
	Accounts     *Collection[models.AuthUser]

	byName map[string]RawCollection
}

// NewRegistry создаёт коллекции со встроенными демо-данными.
func NewRegistry(kv storage.KV) *Registry {
	return NewRegistryWithSeed(kv, mockdata.MustDefault)
}

// NewRegistryWithSeed создаёт коллекции с собственным источником начальных данных.
// seed вызывается на каждое заполнение и должен возвращать независимую копию.
func NewRegistryWithSeed(kv storage.KV, seed func() *mockdata.Dataset) *Registry {
	r := &Registry{
		Articles: NewCollection(kv, Definition[models.Article]{
			Name:     "articles",
			Key:      KeyArticles,
			Seed:     func() []models.Article { return seed().Articles },
			ID:       func(a *models.Article) *string { return &a.ID },
			Validate: validateArticle,
			Required: []string{"title", "slug"},
		}),
		Employers: NewCollection(kv, Definition[models.Employer]{
			Name:     "employers",
			Key:      KeyEmployers,
			Seed:     func() []models.Employer { return seed().Employers },
			ID:       func(e *models.Employer) *string { return &e.ID },
			Validate: validateEmployer,
			Required: []string{"company_name"},
		}),
		Jobs: NewCollection(kv, Definition[models.JobPosting]{
			Name:     "jobs",
			Key:      KeyJobs,
			Seed:     func() []models.JobPosting { return seed().Jobs },
			ID:       func(j *models.JobPosting) *string { return &j.ID },
			Validate: validateJob,
			Required: []string{"title", "skill_category", "duration_type", "status"},
		}),
		Workers: NewCollection(kv, Definition[models.Worker]{
			Name:     "workers",
			Key:      KeyWorkers,
			Seed:     func() []models.Worker { return seed().Workers },
			ID:       func(w *models.Worker) *string { return &w.ID },
			Validate: validateWorker,
			Required: []string{"full_name", "skills"},
		}),
		Skills: NewCollection(kv, Definition[models.SkillGroup]{
			Name:     "skills",
			Key:      KeySkills,
			Seed:     func() []models.SkillGroup { return seed().SkillGroups },
			ID:       func(g *models.SkillGroup) *string { return &g.ID },
			Validate: validateSkillGroup,
			Required: []string{"name", "skills"},
		}),
		FAQ: NewCollection(kv, Definition[models.FAQItem]{
			Name:     "faq",
			Key:      KeyFAQ,
			Seed:     func() []models.FAQItem { return seed().FAQ },
			ID:       func(f *models.FAQItem) *string { return &f.ID },
			Validate: validateFAQ,
			Required: []string{"question", "answer"},
		}),
		Pages: NewCollection(kv, Definition[models.PageBlock]{
			Name:     "pages",
			Key:      KeyPages,
			Seed:     func() []models.PageBlock { return seed().Pages },
			ID:       func(p *models.PageBlock) *string { return &p.ID },
			Validate: validatePageBlock,
			Required: []string{"page"},
		}),
		Settings: NewCollection(kv, Definition[models.SiteSetting]{
			Name:     "settings",
			Key:      KeySettings,
			Seed:     func() []models.SiteSetting { return seed().Settings },
			ID:       func(s *models.SiteSetting) *string { return &s.ID },
			Required: []string{"value"},
		}),
		Trainings: NewCollection(kv, Definition[models.Training]{
			Name:     "trainings",
			Key:      KeyTrainings,
			Seed:     func() []models.Training { return seed().Trainings },
			ID:       func(t *models.Training) *string { return &t.ID },
			Validate: validateTraining,
			Required: []string{"title"},
		}),
		Reviews: NewCollection(kv, Definition[models.Review]{
			Name:     "reviews",
			Key:      KeyReviews,
			Seed:     func() []models.Review { return seed().Reviews },
			ID:       func(r *models.Review) *string { return &r.ID },
			Validate: validateReview,
			Required: []string{"reviewee_id", "rating"},
		}),
		Applications: NewCollection(kv, Definition[models.Application]{
			Name:     "applications",
			Key:      KeyApplications,
			Seed:     func() []models.Application { return seed().Applications },
			ID:       func(a *models.Application) *string { return &a.ID },
			Required: []string{"job_id", "worker_user_id"},
		}),
		Accounts: NewCollection(kv, Definition[models.AuthUser]{
			Name:     "accounts",
			Key:      KeyAccounts,
			ID:       func(u *models.AuthUser) *string { return &u.ID },
			Validate: validateAccount,
			Required: []string{"phone", "role"},
		}),
	}
	r.Reviews.def.AfterWrite = r.syncWorkerRatings

	r.byName = map[string]RawCollection{}
	for _, c := range []RawCollection{
		r.Articles, r.Employers, r.Jobs, r.Workers, r.Skills, r.FAQ,
		r.Pages, r.Settings, r.Trainings, r.Reviews, r.Applications, r.Accounts,
	} {
		r.byName[c.Name()] = c
	}
	return r
}

// Names возвращает имена коллекций по алфавиту.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raw возвращает коллекцию по имени.
func (r *Registry) Raw(name string) (RawCollection, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, apperror.ErrUnknownCollection
	}
	return c, nil
}

func validateArticle(a models.Article) error {
	return errors.Join(
		validation.ValidateNonEmpty("заголовок", a.Title),
		validation.ValidateNonEmpty("slug", a.Slug),
	)
}

func validateEmployer(e models.Employer) error {
	if err := validation.ValidateCompanyName(e.CompanyName); err != nil {
		return err
	}
	if e.Email != "" {
		return validation.ValidateEmail(e.Email)
	}
	return nil
}

func validateJob(j models.JobPosting) error {
	if err := validation.ValidateNonEmpty("название вакансии", j.Title); err != nil {
		return err
	}
	if err := validation.ValidateSkillCategory(j.SkillCategory); err != nil {
		return err
	}
	if !j.DurationType.IsValid() {
		return errors.New("неизвестный тип длительности")
	}
	if !j.Status.IsValid() {
		return errors.New("неизвестный статус вакансии")
	}
	if _, err := valueobject.NewBudget(j.BudgetMin, j.BudgetMax); err != nil {
		return err
	}
	return nil
}

func validateWorker(w models.Worker) error {
	if err := validation.ValidateNonEmpty("имя", w.FullName); err != nil {
		return err
	}
	return validation.ValidateSkills(w.Skills)
}

func validateSkillGroup(g models.SkillGroup) error {
	if err := validation.ValidateNonEmpty("название группы", g.Name); err != nil {
		return err
	}
	return validation.ValidateSkills(g.Skills)
}

func validateFAQ(f models.FAQItem) error {
	return errors.Join(
		validation.ValidateNonEmpty("вопрос", f.Question),
		validation.ValidateNonEmpty("ответ", f.Answer),
	)
}

func validatePageBlock(p models.PageBlock) error {
	return validation.ValidateNonEmpty("страница", p.Page)
}

func validateTraining(t models.Training) error {
	if t.Price < 0 {
		return errors.New("цена не может быть отрицательной")
	}
	return validation.ValidateNonEmpty("название обучения", t.Title)
}

func validateReview(r models.Review) error {
	if err := validation.ValidateRating("оценка", r.Rating); err != nil {
		return err
	}
	if err := validation.ValidateSubRatings(r.Ratings); err != nil {
		return err
	}
	return validation.ValidateLength("комментарий", r.Comment, 0, validation.MaxReviewCommentLength)
}

func validateAccount(u models.AuthUser) error {
	if err := validation.ValidatePhone(u.Phone); err != nil {
		return err
	}
	if !u.Role.IsValid() {
		return errors.New("роль должна быть worker или employer")
	}
	return nil
}
