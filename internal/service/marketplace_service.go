package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/domain/valueobject"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/search"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
	"github.com/ignatzorin/kerjaku-backend/internal/validation"
)

const whatsAppBaseURL = "https://wa.me/"

// MarketplaceService объединяет каталог работников и вакансий с действиями, доступными по ролям.
type MarketplaceService struct {
	cms *cms.Registry
	now func() time.Time

	// applyMu сериализует отклики: они пишут в отклики и в вакансию.
	applyMu sync.Mutex
}

// JobView вакансия с готовой подписью бюджета.
type JobView struct {
	models.JobPosting
	BudgetLabel string `json:"budget_label"`
}

// ContactInfo контакт работника для работодателя.
type ContactInfo struct {
	WorkerID    string `json:"worker_id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// PostJobInput данные новой вакансии.
type PostJobInput struct {
	Title         string
	Description   string
	SkillCategory models.SkillCategory
	Location      string
	BudgetMin     int64
	BudgetMax     int64
	DurationType  models.DurationType
	Requirements  []string
}

// ReviewInput данные отзыва о работнике.
type ReviewInput struct {
	Rating  int
	Ratings models.SubRatings
	Comment string
}

// PortfolioInput новый элемент портфолио.
type PortfolioInput struct {
	MediaURL     string
	ThumbnailURL string
	Caption      string
	MediaType    models.MediaType
}

// WorkerDashboard сводка для работника.
type WorkerDashboard struct {
	User            models.AuthUser      `json:"user"`
	Profile         *models.Worker       `json:"profile,omitempty"`
	Applications    []models.Application `json:"applications"`
	RecommendedJobs []JobView            `json:"recommended_jobs"`
}

// EmployerDashboard сводка для работодателя.
type EmployerDashboard struct {
	User              models.AuthUser      `json:"user"`
	Jobs              []JobView            `json:"jobs"`
	OpenJobs          int                  `json:"open_jobs"`
	TotalApplications int                  `json:"total_applications"`
	Applications      []models.Application `json:"applications"`
}

// NewMarketplaceService создаёт сервис маркетплейса.
func NewMarketplaceService(registry *cms.Registry) *MarketplaceService {
	return &MarketplaceService{cms: registry, now: time.Now}
}

// ListWorkers возвращает работников, подходящих под критерии.
func (s *MarketplaceService) ListWorkers(ctx context.Context, criteria search.WorkerCriteria) ([]models.Worker, error) {
	workers, err := s.cms.Workers.Load(ctx)
	if err != nil {
		return nil, err
	}
	return search.FilterWorkers(workers, criteria), nil
}

// GetWorker возвращает работника по id.
func (s *MarketplaceService) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	w, err := s.cms.Workers.Find(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, apperror.ErrWorkerNotFound)
	}
	return &w, nil
}

// ListJobs возвращает вакансии, подходящие под критерии, в порядке хранения.
// Новые вакансии PostJob ставит в начало коллекции.
func (s *MarketplaceService) ListJobs(ctx context.Context, criteria search.JobCriteria) ([]JobView, error) {
	jobs, err := s.cms.Jobs.Load(ctx)
	if err != nil {
		return nil, err
	}
	return toJobViews(search.FilterJobs(jobs, criteria)), nil
}

// GetJob возвращает вакансию по id.
func (s *MarketplaceService) GetJob(ctx context.Context, id string) (*JobView, error) {
	j, err := s.cms.Jobs.Find(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, apperror.ErrJobNotFound)
	}
	v := toJobView(j)
	return &v, nil
}

// ListArticles возвращает статьи, свежие первыми.
func (s *MarketplaceService) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles, err := s.cms.Articles.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return articles, nil
}

// GetArticle ищет статью по id или slug.
func (s *MarketplaceService) GetArticle(ctx context.Context, idOrSlug string) (*models.Article, error) {
	articles, err := s.cms.Articles.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == idOrSlug || articles[i].Slug == idOrSlug {
			return &articles[i], nil
		}
	}
	return nil, apperror.ErrArticleNotFound
}

// ListTrainings возвращает обучающие программы по дате начала.
func (s *MarketplaceService) ListTrainings(ctx context.Context) ([]models.Training, error) {
	trainings, err := s.cms.Trainings.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trainings, func(i, j int) bool {
		return trainings[i].StartDate.Before(trainings[j].StartDate)
	})
	return trainings, nil
}

// ListFAQ возвращает вопросы в порядке отображения.
func (s *MarketplaceService) ListFAQ(ctx context.Context) ([]models.FAQItem, error) {
	faq, err := s.cms.FAQ.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(faq, func(i, j int) bool { return faq[i].Order < faq[j].Order })
	return faq, nil
}

func (s *MarketplaceService) ListSkillGroups(ctx context.Context) ([]models.SkillGroup, error) {
	return s.cms.Skills.Load(ctx)
}

// GetPage возвращает блоки страницы.
func (s *MarketplaceService) GetPage(ctx context.Context, page string) ([]models.PageBlock, error) {
	blocks, err := s.cms.Pages.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PageBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Page == page {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, apperror.ErrPageNotFound
	}
	return out, nil
}

// Settings возвращает настройки сайта как словарь id -> значение.
func (s *MarketplaceService) Settings(ctx context.Context) (map[string]string, error) {
	settings, err := s.cms.Settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.ID] = st.Value
	}
	return out, nil
}

// ContactWorker раскрывает телефон работника. Только для работодателя.
func (s *MarketplaceService) ContactWorker(ctx context.Context, store *session.Store, workerID string) (*ContactInfo, error) {
	if _, err := store.RequireRole(models.RoleEmployer); err != nil {
		return nil, err
	}

	w, err := s.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	return &ContactInfo{
		WorkerID:    w.ID,
		FullName:    w.FullName,
		Phone:       w.Phone,
		WhatsAppURL: whatsAppBaseURL + strings.TrimPrefix(validation.NormalizePhone(w.Phone), "+"),
	}, nil
}

// ApplyToJob регистрирует отклик работника на открытую вакансию.
func (s *MarketplaceService) ApplyToJob(ctx context.Context, store *session.Store, jobID, message string) (*models.Application, error) {
	user, err := store.RequireRole(models.RoleWorker)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("сообщение", strings.TrimSpace(message), 0, validation.MaxApplicationMessage); err != nil {
		return nil, apperror.Validation(err)
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	job, err := s.cms.Jobs.Find(ctx, jobID)
	if err != nil {
		return nil, notFoundAs(err, apperror.ErrJobNotFound)
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperror.New(apperror.ErrCodeConflict, "вакансия больше не принимает отклики")
	}

	applications, err := s.cms.Applications.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range applications {
		if a.JobID == jobID && a.WorkerUserID == user.ID {
			return nil, apperror.New(apperror.ErrCodeConflict, "вы уже откликнулись на эту вакансию")
		}
	}

	app, err := s.cms.Applications.Add(ctx, models.Application{
		JobID:        jobID,
		WorkerUserID: user.ID,
		WorkerName:   user.Name,
		Phone:        user.Phone,
		Message:      strings.TrimSpace(message),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.cms.Jobs.Update(ctx, jobID, func(j *models.JobPosting) error {
		j.Applications++
		return nil
	}); err != nil {
		if rmErr := s.cms.Applications.Remove(ctx, app.ID); rmErr != nil {
			logger.Error("marketplace: не удалось откатить отклик", logrus.Fields{
				"application_id": app.ID,
				"error":          rmErr.Error(),
			})
		}
		return nil, notFoundAs(err, apperror.ErrJobNotFound)
	}

	logger.Info("marketplace: отклик на вакансию", logrus.Fields{"job_id": jobID, "user_id": user.ID})
	return &app, nil
}

// PostJob публикует вакансию от имени работодателя сессии.
func (s *MarketplaceService) PostJob(ctx context.Context, store *session.Store, in PostJobInput) (*JobView, error) {
	user, err := store.RequireRole(models.RoleEmployer)
	if err != nil {
		return nil, err
	}
	if err := validatePostJob(in); err != nil {
		return nil, apperror.Validation(err)
	}
	budget, err := valueobject.NewBudget(in.BudgetMin, in.BudgetMax)
	if err != nil {
		return nil, err
	}

	job := models.JobPosting{
		EmployerID:    user.ID,
		EmployerName:  user.DisplayName(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		SkillCategory: in.SkillCategory,
		Location:      strings.TrimSpace(in.Location),
		BudgetMin:     budget.Min,
		BudgetMax:     budget.Max,
		DurationType:  in.DurationType,
		Requirements:  cleanRequirements(in.Requirements),
		Status:        models.JobStatusOpen,
		CreatedAt:     s.now().UTC(),
	}
	if e, err := s.cms.Employers.Find(ctx, user.ID); err == nil {
		job.EmployerLogo = e.Logo
	}

	created, err := s.cms.Jobs.Prepend(ctx, job)
	if err != nil {
		return nil, err
	}

	logger.Info("marketplace: опубликована вакансия", logrus.Fields{"job_id": created.ID, "employer_id": user.ID})
	v := toJobView(created)
	return &v, nil
}

// UpdateJobStatus закрывает вакансию или отмечает её заполненной. Только владелец.
func (s *MarketplaceService) UpdateJobStatus(ctx context.Context, store *session.Store, jobID string, status models.JobStatus) (*JobView, error) {
	user, err := store.RequireRole(models.RoleEmployer)
	if err != nil {
		return nil, err
	}

	updated, err := s.cms.Jobs.Update(ctx, jobID, func(j *models.JobPosting) error {
		if j.EmployerID != user.ID {
			return apperror.ErrForbidden
		}
		if err := valueobject.ValidateJobTransition(j.Status, status); err != nil {
			return err
		}
		j.Status = status
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, apperror.ErrJobNotFound)
	}

	v := toJobView(updated)
	return &v, nil
}

// AddReview сохраняет отзыв работодателя. Рейтинг работника пересчитывает коллекция отзывов.
func (s *MarketplaceService) AddReview(ctx context.Context, store *session.Store, workerID string, in ReviewInput) (*models.Review, error) {
	user, err := store.RequireRole(models.RoleEmployer)
	if err != nil {
		return nil, err
	}
	if err := validateReviewInput(in); err != nil {
		return nil, apperror.Validation(err)
	}

	if _, err := s.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}

	review, err := s.cms.Reviews.Add(ctx, models.Review{
		ReviewerID:   user.ID,
		ReviewerRole: models.RoleEmployer,
		ReviewerName: user.DisplayName(),
		RevieweeID:   workerID,
		RevieweeRole: models.RoleWorker,
		Rating:       in.Rating,
		Ratings:      in.Ratings,
		Comment:      strings.TrimSpace(in.Comment),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListWorkerReviews возвращает отзывы о работнике, новые первыми.
func (s *MarketplaceService) ListWorkerReviews(ctx context.Context, workerID string) ([]models.Review, error) {
	if _, err := s.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}

	reviews, err := s.cms.Reviews.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := cms.ReviewsOf(reviews, workerID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AddPortfolioItem добавляет работу в портфолио собственного профиля работника.
func (s *MarketplaceService) AddPortfolioItem(ctx context.Context, store *session.Store, workerID string, in PortfolioInput) (*models.PortfolioItem, error) {
	user, err := store.RequireRole(models.RoleWorker)
	if err != nil {
		return nil, err
	}
	if user.ID != workerID {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateNonEmpty("ссылка на медиа", in.MediaURL); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateLength("подпись", in.Caption, 0, validation.MaxCaptionLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if in.MediaType != models.MediaImage && in.MediaType != models.MediaVideo {
		return nil, apperror.New(apperror.ErrCodeValidation, "тип медиа должен быть image или video")
	}

	item := models.PortfolioItem{
		ID:           uuid.NewString(),
		MediaURL:     in.MediaURL,
		ThumbnailURL: in.ThumbnailURL,
		Caption:      strings.TrimSpace(in.Caption),
		MediaType:    in.MediaType,
	}
	if item.ThumbnailURL == "" && item.MediaType == models.MediaImage {
		item.ThumbnailURL = item.MediaURL
	}

	_, err = s.cms.Workers.Update(ctx, workerID, func(w *models.Worker) error {
		next := 1
		for _, p := range w.Portfolio {
			if p.Order >= next {
				next = p.Order + 1
			}
		}
		item.Order = next
		w.Portfolio = append(w.Portfolio, item)
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, apperror.ErrWorkerNotFound)
	}
	return &item, nil
}

// WorkerDashboard собирает отклики работника и подходящие открытые вакансии.
// Пустой skills означает навыки из профиля работника.
func (s *MarketplaceService) WorkerDashboard(ctx context.Context, store *session.Store, skills []models.SkillCategory) (*WorkerDashboard, error) {
	user, err := store.RequireRole(models.RoleWorker)
	if err != nil {
		return nil, err
	}

	dash := &WorkerDashboard{User: user}
	if w, err := s.cms.Workers.Find(ctx, user.ID); err == nil {
		dash.Profile = &w
		if len(skills) == 0 {
			skills = w.Skills
		}
	}

	applications, err := s.cms.Applications.Load(ctx)
	if err != nil {
		return nil, err
	}
	dash.Applications = make([]models.Application, 0)
	for _, a := range applications {
		if a.WorkerUserID == user.ID {
			dash.Applications = append(dash.Applications, a)
		}
	}
	sort.SliceStable(dash.Applications, func(i, j int) bool {
		return dash.Applications[i].CreatedAt.After(dash.Applications[j].CreatedAt)
	})

	open, err := s.ListJobs(ctx, search.JobCriteria{Status: models.JobStatusOpen})
	if err != nil {
		return nil, err
	}
	dash.RecommendedJobs = make([]JobView, 0, len(open))
	for _, j := range open {
		if len(skills) == 0 || containsSkill(skills, j.SkillCategory) {
			dash.RecommendedJobs = append(dash.RecommendedJobs, j)
		}
	}
	return dash, nil
}

// EmployerDashboard собирает вакансии работодателя и отклики на них.
func (s *MarketplaceService) EmployerDashboard(ctx context.Context, store *session.Store) (*EmployerDashboard, error) {
	user, err := store.RequireRole(models.RoleEmployer)
	if err != nil {
		return nil, err
	}

	jobs, err := s.ListJobs(ctx, search.JobCriteria{})
	if err != nil {
		return nil, err
	}

	dash := &EmployerDashboard{User: user, Jobs: make([]JobView, 0), Applications: make([]models.Application, 0)}
	own := make(map[string]struct{})
	for _, j := range jobs {
		if j.EmployerID != user.ID {
			continue
		}
		own[j.ID] = struct{}{}
		dash.Jobs = append(dash.Jobs, j)
		dash.TotalApplications += j.Applications
		if j.Status == models.JobStatusOpen {
			dash.OpenJobs++
		}
	}

	applications, err := s.cms.Applications.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range applications {
		if _, ok := own[a.JobID]; ok {
			dash.Applications = append(dash.Applications, a)
		}
	}
	return dash, nil
}

func validatePostJob(in PostJobInput) error {
	if err := validation.ValidateJobTitle(in.Title); err != nil {
		return err
	}
	if err := validation.ValidateJobDescription(in.Description); err != nil {
		return err
	}
	if err := validation.ValidateSkillCategory(in.SkillCategory); err != nil {
		return err
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return err
	}
	if !in.DurationType.IsValid() {
		return errors.New("тип длительности должен быть daily, weekly, monthly или project")
	}
	return validation.ValidateRequirements(cleanRequirements(in.Requirements))
}

func validateReviewInput(in ReviewInput) error {
	if err := validation.ValidateRating("оценка", in.Rating); err != nil {
		return err
	}
	if err := validation.ValidateSubRatings(in.Ratings); err != nil {
		return err
	}
	return validation.ValidateLength("комментарий", in.Comment, 0, validation.MaxReviewCommentLength)
}

func cleanRequirements(reqs []string) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func containsSkill(skills []models.SkillCategory, skill models.SkillCategory) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}

func toJobView(j models.JobPosting) JobView {
	return JobView{JobPosting: j, BudgetLabel: valueobject.BudgetOf(j).Label(j.DurationType)}
}

func toJobViews(jobs []models.JobPosting) []JobView {
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobView(j))
	}
	return out
}

// notFoundAs подменяет общую ошибку "запись не найдена" доменной.
func notFoundAs(err error, target *apperror.AppError) error {
	if errors.Is(err, apperror.ErrRecordNotFound) {
		return target
	}
	return err
}
