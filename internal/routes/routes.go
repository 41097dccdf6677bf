package routes

import (
	"net/http"

	"ishtop_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// API живет без версионного префикса - пути зашиты во фронтенд.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	root := ginRouter.Group("")
	{
		appHandlers.AuthHandler.RegisterRoutes(root)
		appHandlers.OrderHandler.RegisterRoutes(root)
		appHandlers.VacancyHandler.RegisterRoutes(root)
		appHandlers.ApplicationHandler.RegisterRoutes(root)
		appHandlers.WorkerHandler.RegisterRoutes(root)
		appHandlers.ReviewHandler.RegisterRoutes(root)
		appHandlers.GeoHandler.RegisterRoutes(root)
	}

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
