package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

// MediaURLPrefix префикс, под которым раздаются загруженные файлы.
const MediaURLPrefix = "/media/"

// PortfolioHandler загрузка фото и видео работ в портфолио.
type PortfolioHandler struct {
	market  *service.MarketplaceService
	storage *storage.MediaStorage
}

func NewPortfolioHandler(market *service.MarketplaceService, storage *storage.MediaStorage) *PortfolioHandler {
	return &PortfolioHandler{market: market, storage: storage}
}

// Upload обрабатывает POST /api/workers/:id/portfolio (multipart: file, caption).
func (h *PortfolioHandler) Upload(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	workerID := c.Param("id")

	// Проверяем права до записи файла на диск
	user, err := store.RequireRole(models.RoleWorker)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if user.ID != workerID {
		common.RespondAppError(c, apperror.ErrForbidden)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}
	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}
	if file.Size > h.storage.MaxUploadBytes() {
		common.RespondError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("размер файла превышает %d МБ", h.storage.MaxUploadBytes()/(1024*1024)))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondAppError(c, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось открыть файл"))
		return
	}
	defer src.Close()

	saved, err := h.storage.Save(c.Request.Context(), workerID, src)
	switch {
	case errors.Is(err, storage.ErrUnsupportedMedia):
		common.RespondBadRequest(c, "неподдерживаемый тип файла. Разрешены только фото и видео")
		return
	case errors.Is(err, storage.ErrTooLarge):
		common.RespondError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("размер файла превышает %d МБ", h.storage.MaxUploadBytes()/(1024*1024)))
		return
	case err != nil:
		common.RespondAppError(c, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось сохранить файл"))
		return
	}

	item, err := h.market.AddPortfolioItem(c.Request.Context(), store, workerID, service.PortfolioInput{
		MediaURL:  MediaURLPrefix + saved.Path,
		Caption:   c.PostForm("caption"),
		MediaType: saved.Type,
	})
	if err != nil {
		if delErr := h.storage.Delete(c.Request.Context(), saved.Path); delErr != nil {
			logger.Warn("handlers: не удалось удалить файл портфолио", map[string]interface{}{
				"path":  saved.Path,
				"error": delErr.Error(),
			})
		}
		common.RespondAppError(c, err)
		return
	}

	logger.Info("handlers: файл портфолио загружен", map[string]interface{}{
		"worker_id": workerID,
		"path":      saved.Path,
		"mime":      saved.MIME,
		"size":      saved.Size,
	})
	c.JSON(http.StatusCreated, item)
}
