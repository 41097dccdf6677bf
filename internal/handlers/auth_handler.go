package handlers

import (
	"net/http"

	"ishtop_backend/internal/middleware"
	"ishtop_backend/internal/services"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  *services.AuthService
	cookieSecure bool
}

func NewAuthHandler(base *BaseHandler, authService *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/email/register", h.RegisterEmail)
		auth.POST("/email/login", h.LoginEmail)
		auth.POST("/email/send-otp", h.SendEmailOtp)
		auth.POST("/email/verify-otp", h.VerifyEmailOtp)
		auth.POST("/send-otp", h.SendOtp)
		auth.POST("/verify-otp", h.VerifyOtp)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Me)
	}
}

// RegisterEmail - POST /auth/email/register
func (h *AuthHandler) RegisterEmail(c *gin.Context) {
	var req dto.EmailRegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, session, err := h.authService.RegisterEmail(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, dto.AuthResponse{Success: true, User: user})
}

// LoginEmail - POST /auth/email/login
func (h *AuthHandler) LoginEmail(c *gin.Context) {
	var req dto.EmailLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, session, err := h.authService.LoginEmail(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, User: user})
}

// SendOtp - POST /auth/send-otp
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req dto.SendOtpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	isNewUser, err := h.authService.SendOtp(c.Request.Context(), req.Phone)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SendOtpResponse{Success: true, IsNewUser: isNewUser})
}

// VerifyOtp - POST /auth/verify-otp
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VerifyOtpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, session, isNewUser, err := h.authService.VerifyOtp(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, dto.VerifyOtpResponse{Success: true, IsNewUser: isNewUser, UserID: user.ID})
}

// SendEmailOtp - POST /auth/email/send-otp
func (h *AuthHandler) SendEmailOtp(c *gin.Context) {
	var req dto.SendEmailOtpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	isNewUser, err := h.authService.SendEmailOtp(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SendOtpResponse{Success: true, IsNewUser: isNewUser})
}

// VerifyEmailOtp - POST /auth/email/verify-otp
func (h *AuthHandler) VerifyEmailOtp(c *gin.Context) {
	var req dto.VerifyEmailOtpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, session, isNewUser, err := h.authService.VerifyEmailOtp(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, dto.VerifyOtpResponse{Success: true, IsNewUser: isNewUser, UserID: user.ID})
}

// Logout - POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me - GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrSessionExpired)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, User: user})
}

// Cookie HTTP-only и SameSite=Lax: токен недоступен из JS, а обычная
// навигация по ссылке на сайт сессию не теряет.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cookieSecure, true)
}
