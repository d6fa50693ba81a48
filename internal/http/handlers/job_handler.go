package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/dto"
	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/search"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
)

// JobHandler вакансии: просмотр, публикация, отклики.
type JobHandler struct {
	market *service.MarketplaceService
}

func NewJobHandler(market *service.MarketplaceService) *JobHandler {
	return &JobHandler{market: market}
}

// ListJobs GET /api/jobs?q=&location=&category=&duration=&status=
// По умолчанию показываются только открытые вакансии, status=all снимает ограничение.
func (h *JobHandler) ListJobs(c *gin.Context) {
	category, err := search.ParseCategory(c.Query("category"))
	if err != nil {
		common.RespondAppError(c, apperror.Validation(err))
		return
	}
	duration, err := search.ParseDuration(c.Query("duration"))
	if err != nil {
		common.RespondAppError(c, apperror.Validation(err))
		return
	}

	status := models.JobStatusOpen
	if raw := strings.TrimSpace(c.Query("status")); raw == "all" {
		status = ""
	} else if raw != "" {
		if status, err = search.ParseStatus(raw); err != nil {
			common.RespondAppError(c, apperror.Validation(err))
			return
		}
	}

	jobs, err := h.market.ListJobs(c.Request.Context(), search.JobCriteria{
		Text:     c.Query("q"),
		Location: c.Query("location"),
		Category: category,
		Duration: duration,
		Status:   status,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, jobs, len(jobs))
}

// GetJob GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.market.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// PostJob POST /api/jobs
func (h *JobHandler) PostJob(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.PostJobRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	job, err := h.market.PostJob(c.Request.Context(), store, service.PostJobInput{
		Title:         req.Title,
		Description:   req.Description,
		SkillCategory: req.SkillCategory,
		Location:      req.Location,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		DurationType:  req.DurationType,
		Requirements:  req.Requirements,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Apply POST /api/jobs/:id/apply
func (h *JobHandler) Apply(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.ApplyRequest
	if c.Request.ContentLength > 0 {
		if err := common.BindJSON(c, &req); err != nil {
			common.RespondAppError(c, err)
			return
		}
	}

	app, err := h.market.ApplyToJob(c.Request.Context(), store, c.Param("id"), req.Message)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// UpdateStatus PUT /api/jobs/:id/status
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	job, err := h.market.UpdateJobStatus(c.Request.Context(), store, c.Param("id"), req.Status)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
