package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/dto"
	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
)

// maxAdminPayload ограничение тела запроса админки.
const maxAdminPayload = 4 << 20

// AdminHandler вход администратора и CRUD коллекций CMS.
type AdminHandler struct {
	admin    *service.AdminService
	sessions *session.Manager
}

func NewAdminHandler(admin *service.AdminService, sessions *session.Manager) *AdminHandler {
	return &AdminHandler{admin: admin, sessions: sessions}
}

// Login POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	token, err := h.admin.Login(req.Password)
	if err != nil {
		logger.Warn("handlers: неудачный вход администратора", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Stats GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if stats.Sessions, err = h.sessions.Stored(c.Request.Context()); err != nil {
		common.RespondAppError(c, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось посчитать сессии"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Collections GET /api/admin/cms
func (h *AdminHandler) Collections(c *gin.Context) {
	names := h.admin.Collections()
	common.RespondList(c, names, len(names))
}

// Get GET /api/admin/cms/:collection
func (h *AdminHandler) Get(c *gin.Context) {
	col, err := h.admin.Collection(c.Param("collection"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	raw, err := col.LoadJSON(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// Put PUT /api/admin/cms/:collection заменяет коллекцию целиком.
func (h *AdminHandler) Put(c *gin.Context) {
	col, err := h.admin.Collection(c.Param("collection"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	payload, err := readPayload(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if err := col.SaveJSON(c.Request.Context(), payload); err != nil {
		common.RespondAppError(c, err)
		return
	}

	logger.Info("handlers: коллекция сохранена", map[string]interface{}{"collection": col.Name()})
	common.RespondSuccess(c, http.StatusOK, "коллекция сохранена", nil)
}

// Post POST /api/admin/cms/:collection добавляет запись.
func (h *AdminHandler) Post(c *gin.Context) {
	col, err := h.admin.Collection(c.Param("collection"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	payload, err := readPayload(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	raw, err := col.AddJSON(c.Request.Context(), payload)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", raw)
}

// Patch PATCH /api/admin/cms/:collection/:id
func (h *AdminHandler) Patch(c *gin.Context) {
	col, err := h.admin.Collection(c.Param("collection"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	payload, err := readPayload(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	raw, err := col.PatchJSON(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// Delete DELETE /api/admin/cms/:collection/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	col, err := h.admin.Collection(c.Param("collection"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if err := col.Remove(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset POST /api/admin/cms/:collection/reset возвращает коллекцию к сиду.
func (h *AdminHandler) Reset(c *gin.Context) {
	col, err := h.admin.Collection(c.Param("collection"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	raw, err := col.ResetJSON(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	logger.Info("handlers: коллекция сброшена к сиду", map[string]interface{}{"collection": col.Name()})
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func readPayload(c *gin.Context) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAdminPayload+1))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать тело запроса")
	}
	if len(payload) > maxAdminPayload {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "тело запроса слишком большое")
	}
	if len(payload) == 0 {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "пустое тело запроса")
	}
	return payload, nil
}
