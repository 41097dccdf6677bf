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

// OrderHandler обслуживает daily-заказы (/orders/*).
type OrderHandler struct {
	*BaseHandler
	orderService       *services.OrderService
	applicationService *services.ApplicationService
}

func NewOrderHandler(base *BaseHandler, orderService *services.OrderService, applicationService *services.ApplicationService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:        base,
		orderService:       orderService,
		applicationService: applicationService,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/stats", h.Stats)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/phone-view", h.PhoneView)
		orders.POST("/:id/phone-call", h.PhoneCall)

		orders.POST("/create", middleware.RequireAuth(), middleware.RequireRole(models.UserRoleCustomer), h.Create)
		orders.POST("/:id/apply", middleware.RequireAuth(), middleware.RequireRole(models.UserRoleWorker), h.Apply)
		orders.GET("/:id/applicants", middleware.RequireAuth(), h.ListApplicants)
		orders.PATCH("/:id/status", middleware.RequireAuth(), h.UpdateStatus)
	}
}

// Create - POST /orders/create (только заказчик)
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateDaily(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

// List - GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.SearchOrdersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), models.OrderTypeDaily, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats - GET /orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	resp, err := h.orderService.CategoryStats(c.Request.Context(), models.OrderTypeDaily)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get - GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	resp, err := h.orderService.Get(c.Request.Context(), c.Param("id"), models.OrderTypeDaily)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Apply - POST /orders/:id/apply (только исполнитель)
func (h *OrderHandler) Apply(c *gin.Context) {
	worker, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrSessionExpired)
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	applicant, err := h.applicationService.Apply(c.Request.Context(), c.Param("id"), worker, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": applicant})
}

// ListApplicants - GET /orders/:id/applicants (только владелец)
func (h *OrderHandler) ListApplicants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicants, _, err := h.applicationService.ListApplicants(c.Request.Context(), c.Param("id"), userID, models.OrderTypeDaily)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": applicants})
}

// UpdateStatus - PATCH /orders/:id/status (только владелец)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), models.OrderTypeDaily, userID, models.OrderStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// PhoneView - POST /orders/:id/phone-view
// Аналитика контактов: всегда 200, даже если запись не удалась.
func (h *OrderHandler) PhoneView(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	viewer, _ := viewerID.(string)

	h.orderService.RegisterPhoneView(c.Request.Context(), c.Param("id"), viewer)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PhoneCall - POST /orders/:id/phone-call
func (h *OrderHandler) PhoneCall(c *gin.Context) {
	callerID, _ := c.Get("userID")
	caller, _ := callerID.(string)

	h.orderService.RegisterPhoneCall(c.Request.Context(), c.Param("id"), caller)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
