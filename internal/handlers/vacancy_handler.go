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

// VacancyHandler - параллельная схема /vacancies/*, та же пара сервисов.
type VacancyHandler struct {
	*BaseHandler
	orderService       *services.OrderService
	applicationService *services.ApplicationService
}

func NewVacancyHandler(base *BaseHandler, orderService *services.OrderService, applicationService *services.ApplicationService) *VacancyHandler {
	return &VacancyHandler{
		BaseHandler:        base,
		orderService:       orderService,
		applicationService: applicationService,
	}
}

func (h *VacancyHandler) RegisterRoutes(r *gin.RouterGroup) {
	vacancies := r.Group("/vacancies")
	{
		vacancies.GET("", h.List)
		vacancies.GET("/stats", h.Stats)
		vacancies.GET("/:id", h.Get)

		vacancies.POST("/create", middleware.RequireAuth(), middleware.RequireRole(models.UserRoleCustomer), h.Create)
		vacancies.POST("/:id/apply", middleware.RequireAuth(), middleware.RequireRole(models.UserRoleWorker), h.Apply)
		vacancies.GET("/:id/applicants", middleware.RequireAuth(), h.ListApplicants)
		vacancies.PATCH("/:id/status", middleware.RequireAuth(), h.UpdateStatus)
	}
}

// Create - POST /vacancies/create (только заказчик)
func (h *VacancyHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateVacancyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	vacancy, err := h.orderService.CreateVacancy(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": vacancy})
}

// List - GET /vacancies
func (h *VacancyHandler) List(c *gin.Context) {
	var req dto.SearchOrdersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), models.OrderTypeVacancy, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats - GET /vacancies/stats
func (h *VacancyHandler) Stats(c *gin.Context) {
	resp, err := h.orderService.CategoryStats(c.Request.Context(), models.OrderTypeVacancy)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get - GET /vacancies/:id
func (h *VacancyHandler) Get(c *gin.Context) {
	resp, err := h.orderService.Get(c.Request.Context(), c.Param("id"), models.OrderTypeVacancy)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Apply - POST /vacancies/:id/apply (только исполнитель)
func (h *VacancyHandler) Apply(c *gin.Context) {
	worker, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrSessionExpired)
		return
	}

	var req dto.ApplyVacancyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.ApplyToVacancy(c.Request.Context(), c.Param("id"), worker, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": application})
}

// ListApplicants - GET /vacancies/:id/applicants (только владелец)
func (h *VacancyHandler) ListApplicants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	_, applications, err := h.applicationService.ListApplicants(c.Request.Context(), c.Param("id"), userID, models.OrderTypeVacancy)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": applications})
}

// UpdateStatus - PATCH /vacancies/:id/status (только владелец)
func (h *VacancyHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	vacancy, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), models.OrderTypeVacancy, userID, models.OrderStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": vacancy})
}
