package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/search"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
)

// DashboardHandler handles aggregated dashboard data requests.
type DashboardHandler struct {
	market *service.MarketplaceService
}

// NewDashboardHandler creates a new instance.
func NewDashboardHandler(market *service.MarketplaceService) *DashboardHandler {
	return &DashboardHandler{market: market}
}

// Worker GET /api/dashboard/worker?skills=welder
// Навыки из запроса подменяют навыки профиля при подборе вакансий.
func (h *DashboardHandler) Worker(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	skills, err := search.ParseSkills(c.Query("skills"))
	if err != nil {
		common.RespondAppError(c, apperror.Validation(err))
		return
	}

	dashboard, err := h.market.WorkerDashboard(c.Request.Context(), store, skills)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Employer GET /api/dashboard/employer
func (h *DashboardHandler) Employer(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	dashboard, err := h.market.EmployerDashboard(c.Request.Context(), store)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
