package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/dto"
	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/search"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
)

// WorkerHandler каталог работников, контакты и отзывы.
type WorkerHandler struct {
	market *service.MarketplaceService
}

func NewWorkerHandler(market *service.MarketplaceService) *WorkerHandler {
	return &WorkerHandler{market: market}
}

// ListWorkers GET /api/workers?q=&location=&skills=welder,plumber&min_rating=4.5
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	skills, err := search.ParseSkills(c.Query("skills"))
	if err != nil {
		common.RespondAppError(c, apperror.Validation(err))
		return
	}
	minRating, err := search.ParseMinRating(c.Query("min_rating"))
	if err != nil {
		common.RespondAppError(c, apperror.Validation(err))
		return
	}

	workers, err := h.market.ListWorkers(c.Request.Context(), search.WorkerCriteria{
		Text:      c.Query("q"),
		Location:  c.Query("location"),
		Skills:    skills,
		MinRating: minRating,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, workers, len(workers))
}

// GetWorker GET /api/workers/:id
func (h *WorkerHandler) GetWorker(c *gin.Context) {
	worker, err := h.market.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

// ListReviews GET /api/workers/:id/reviews
func (h *WorkerHandler) ListReviews(c *gin.Context) {
	reviews, err := h.market.ListWorkerReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, reviews, len(reviews))
}

// CreateReview POST /api/workers/:id/reviews
func (h *WorkerHandler) CreateReview(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	review, err := h.market.AddReview(c.Request.Context(), store, c.Param("id"), service.ReviewInput{
		Rating:  req.Rating,
		Ratings: req.Ratings,
		Comment: req.Comment,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Contact POST /api/workers/:id/contact
func (h *WorkerHandler) Contact(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	info, err := h.market.ContactWorker(c.Request.Context(), store, c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
