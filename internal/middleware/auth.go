package middleware

import (
	"errors"
	"net/http"

	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/services"
	"ishtop_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// SessionCookieName - имя cookie сессии. Токен - 64 hex-символа,
// сверяется со строкой в user_sessions на каждом запросе.
const SessionCookieName = "session_token"

// SessionMiddleware резолвит cookie сессии в пользователя.
// Анонимные запросы проходят дальше без контекста пользователя:
// 401 решает RequireAuth на конкретных маршрутах, не этот слой.
func SessionMiddleware(authService *services.AuthService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			// Протухший токен трактуем как анонимный запрос, а мертвую
			// cookie гасим сразу: иначе браузер шлет ее с каждым запросом.
			if errors.Is(err, apperrors.ErrSessionExpired) {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(SessionCookieName, "", -1, "/", "", cookieSecure, true)
			}
			c.Next()
			return
		}

		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Set("workerType", user.WorkerType)
		c.Set("currentUser", user)

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth - 401 для маршрутов, требующих живую сессию.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userID"); !exists {
			apperrors.HandleError(c, apperrors.ErrSessionExpired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole - 403 с ролевым сообщением. Вызывается после RequireAuth.
func RequireRole(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			apperrors.HandleError(c, apperrors.ErrSessionExpired)
			c.Abort()
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok || role != required {
			switch required {
			case models.UserRoleCustomer:
				apperrors.HandleError(c, apperrors.ErrCustomerOnly)
			case models.UserRoleWorker:
				apperrors.HandleError(c, apperrors.ErrWorkerOnly)
			default:
				apperrors.HandleError(c, apperrors.NewForbiddenError("Недостаточно прав"))
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser достает пользователя, положенного SessionMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("currentUser")
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
