package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/validation"
)

// IDValidator проверяет, что параметр с указанным именем похож на идентификатор записи.
// Использование: router.GET("/workers/:id", IDValidator("id"), handler.GetWorker)
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(paramName)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			return
		}

		if validation.ValidateRecordID(id) != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " содержит недопустимые символы",
			})
			return
		}

		c.Next()
	}
}
