package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
)

// ContentHandler отдаёт редакционный контент: статьи, обучение, FAQ, страницы.
type ContentHandler struct {
	market *service.MarketplaceService
}

func NewContentHandler(market *service.MarketplaceService) *ContentHandler {
	return &ContentHandler{market: market}
}

// ListArticles GET /api/articles
func (h *ContentHandler) ListArticles(c *gin.Context) {
	articles, err := h.market.ListArticles(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, articles, len(articles))
}

// GetArticle GET /api/articles/:id, принимает id или slug.
func (h *ContentHandler) GetArticle(c *gin.Context) {
	article, err := h.market.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// ListTrainings GET /api/trainings
func (h *ContentHandler) ListTrainings(c *gin.Context) {
	trainings, err := h.market.ListTrainings(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, trainings, len(trainings))
}

// ListFAQ GET /api/faq
func (h *ContentHandler) ListFAQ(c *gin.Context) {
	items, err := h.market.ListFAQ(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, items, len(items))
}

// ListSkills GET /api/skills
func (h *ContentHandler) ListSkills(c *gin.Context) {
	groups, err := h.market.ListSkillGroups(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, groups, len(groups))
}

// GetPage GET /api/pages/:page
func (h *ContentHandler) GetPage(c *gin.Context) {
	blocks, err := h.market.GetPage(c.Request.Context(), c.Param("page"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondList(c, blocks, len(blocks))
}

// Settings GET /api/settings
func (h *ContentHandler) Settings(c *gin.Context) {
	settings, err := h.market.Settings(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
