package handlers

import (
	"net/http"

	"ishtop_backend/internal/middleware"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/services"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reviews", middleware.RequireAuth(), middleware.RequireRole(models.UserRoleCustomer), h.Create)
}

// Create - POST /reviews (только заказчик, по своему завершенному заказу)
func (h *ReviewHandler) Create(c *gin.Context) {
	customer, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrSessionExpired)
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), customer, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": review})
}
