package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/config"
	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers"
	"github.com/ignatzorin/kerjaku-backend/internal/http/middleware"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
)

// Handlers набор HTTP хэндлеров приложения.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Workers   *handlers.WorkerHandler
	Jobs      *handlers.JobHandler
	Content   *handlers.ContentHandler
	Dashboard *handlers.DashboardHandler
	Portfolio *handlers.PortfolioHandler
	Admin     *handlers.AdminHandler
	Health    *handlers.HealthHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens *service.TokenManager,
	sessions *session.Manager,
	admin *service.AdminService,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Env != "test" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	// Публичные маршруты
	api.GET("/workers", h.Workers.ListWorkers)
	api.GET("/workers/:id", middleware.IDValidator("id"), h.Workers.GetWorker)
	api.GET("/workers/:id/reviews", middleware.IDValidator("id"), h.Workers.ListReviews)
	api.GET("/jobs", h.Jobs.ListJobs)
	api.GET("/jobs/:id", middleware.IDValidator("id"), h.Jobs.GetJob)
	api.GET("/articles", h.Content.ListArticles)
	api.GET("/articles/:id", middleware.IDValidator("id"), h.Content.GetArticle)
	api.GET("/trainings", h.Content.ListTrainings)
	api.GET("/faq", h.Content.ListFAQ)
	api.GET("/skills", h.Content.ListSkills)
	api.GET("/pages/:page", middleware.IDValidator("page"), h.Content.GetPage)
	api.GET("/settings", h.Content.Settings)

	sessionMW := middleware.SessionMiddleware(tokens, sessions)

	authGroup := api.Group("/auth")
	authGroup.Use(sessionMW)
	{
		authRateLimit := middleware.RateLimitMiddleware("auth", cfg.RateLimitLimit, cfg.RateLimitPeriod)
		authGroup.POST("/register", authRateLimit, h.Auth.Register)
		authGroup.POST("/login", authRateLimit, h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", h.Auth.Me)
	}

	// Маршруты с проверкой роли внутри сервисов
	protected := api.Group("")
	protected.Use(sessionMW)
	{
		protected.POST("/workers/:id/contact", middleware.IDValidator("id"), h.Workers.Contact)
		protected.POST("/workers/:id/reviews", middleware.IDValidator("id"), h.Workers.CreateReview)
		protected.POST("/workers/:id/portfolio", middleware.IDValidator("id"), h.Portfolio.Upload)

		protected.POST("/jobs", h.Jobs.PostJob)
		protected.POST("/jobs/:id/apply", middleware.IDValidator("id"), h.Jobs.Apply)
		protected.PUT("/jobs/:id/status", middleware.IDValidator("id"), h.Jobs.UpdateStatus)

		protected.GET("/dashboard/worker", h.Dashboard.Worker)
		protected.GET("/dashboard/employer", h.Dashboard.Employer)
	}

	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", middleware.RateLimitMiddleware("admin", cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Admin.Login)

	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminMiddleware(admin))
	{
		adminProtected.GET("/stats", h.Admin.Stats)
		adminProtected.GET("/cms", h.Admin.Collections)
		adminProtected.GET("/cms/:collection", h.Admin.Get)
		adminProtected.PUT("/cms/:collection", h.Admin.Put)
		adminProtected.POST("/cms/:collection", h.Admin.Post)
		adminProtected.POST("/cms/:collection/reset", h.Admin.Reset)
		adminProtected.PATCH("/cms/:collection/:id", middleware.IDValidator("id"), h.Admin.Patch)
		adminProtected.DELETE("/cms/:collection/:id", middleware.IDValidator("id"), h.Admin.Delete)
	}

	return r
}
