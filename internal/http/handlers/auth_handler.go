package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/kerjaku-backend/internal/dto"
	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers/common"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
)

// AuthHandler предоставляет HTTP слой для регистрации, входа и выхода.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register обрабатывает POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.RegisterRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), store, service.RegisterInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
		CompanyName:     req.CompanyName,
		Location:        req.Location,
		Skills:          req.Skills,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{Authenticated: true, User: user})
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), store, service.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: true, User: user})
}

// Logout обрабатывает POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	err = h.auth.Logout(c.Request.Context(), store)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "выход выполнен", nil)
}

// Me обрабатывает GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	store, err := common.CurrentSession(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	user := store.Current()
	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: user != nil, User: user})
}
