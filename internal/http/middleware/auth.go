package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
)

// ContextSessionKey ключ сессии в gin.Context.
const ContextSessionKey = "session"

// Заголовки браузерного контекста и администратора.
const (
	ContextTokenHeader = "X-Context-Token"
	AdminTokenHeader   = "X-Admin-Token"
)

// SessionMiddleware определяет браузерный контекст по Bearer токену и открывает его сессию.
// Запрос без токена получает новый контекст, токен которого возвращается в X-Context-Token.
func SessionMiddleware(tokens *service.TokenManager, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contextID string

		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			id, err := tokens.ParseContext(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен контекста невалиден"})
				return
			}
			contextID = id
		} else {
			contextID = service.NewContextID()
			token, err := tokens.IssueContext(contextID)
			if err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
			c.Header(ContextTokenHeader, token)
		}

		c.Set(ContextSessionKey, sessions.Get(c.Request.Context(), contextID))
		c.Next()
	}
}

// AdminMiddleware пропускает только запросы с действующим токеном администратора.
func AdminMiddleware(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := admin.Authorize(c.GetHeader(AdminTokenHeader)); err != nil {
			c.AbortWithStatusJSON(apperror.StatusOf(err), gin.H{"error": "требуется авторизация администратора"})
			return
		}
		c.Next()
	}
}

// CurrentSession возвращает сессию, открытую SessionMiddleware.
func CurrentSession(c *gin.Context) (*session.Store, bool) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	store, ok := raw.(*session.Store)
	return store, ok
}
