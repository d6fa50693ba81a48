package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/dto"
	"github.com/ignatzorin/kerjaku-backend/internal/http/middleware"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
)

// CurrentSession extracts the browser context session from Gin context
func CurrentSession(c *gin.Context) (*session.Store, error) {
	store, ok := middleware.CurrentSession(c)
	if !ok || store == nil {
		return nil, apperror.New(apperror.ErrCodeInternal, "сессия не инициализирована")
	}
	return store, nil
}

// BindJSON binds JSON request and converts binding errors to validation errors
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, "некорректное тело запроса")
	}
	return nil
}

// RespondAppError maps an error to its HTTP status and a client-safe message
func RespondAppError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError && logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Request error")
	}
	c.JSON(status, middleware.PublicError(err))
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondSuccess sends a standardized success response
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// RespondList sends a collection with its total size
func RespondList(c *gin.Context, items interface{}, total int) {
	c.JSON(http.StatusOK, dto.ListResponse{Items: items, Total: total})
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}
