package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/dto"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.StatusOf(err)

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"status": status,
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Request error")
		}

		c.JSON(status, PublicError(err))
	}
}

// PublicError формирует тело ответа: сообщение AppError для клиентских ошибок,
// общее сообщение для внутренних.
func PublicError(err error) dto.ErrorResponse {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return dto.ErrorResponse{Error: "внутренняя ошибка сервера"}
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		return dto.ErrorResponse{Error: "внутренняя ошибка сервера", Code: string(appErr.Code)}
	}
	return dto.ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)}
}
