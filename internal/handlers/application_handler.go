package handlers

import (
	"net/http"

	"ishtop_backend/internal/middleware"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/services"
	"ishtop_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler - решения заказчика по откликам.
type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications", middleware.RequireAuth())
	{
		applications.GET("/my", middleware.RequireRole(models.UserRoleWorker), h.ListMy)
		applications.PATCH("/:id/status", h.UpdateStatus)
	}

	vacancyApplications := r.Group("/vacancy-applications", middleware.RequireAuth())
	{
		vacancyApplications.PATCH("/:id/status", h.UpdateVacancyApplicationStatus)
	}
}

// ListMy - GET /applications/my (только исполнитель)
func (h *ApplicationHandler) ListMy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicants, applications, err := h.applicationService.ListMyApplications(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MyApplicationsResponse{
		Success:             true,
		Applications:        applicants,
		VacancyApplications: applications,
	})
}

// UpdateStatus - PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	applicant, err := h.applicationService.SetApplicantStatus(c.Request.Context(), c.Param("id"), userID, models.ApplicantStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": applicant})
}

// UpdateVacancyApplicationStatus - PATCH /vacancy-applications/:id/status
func (h *ApplicationHandler) UpdateVacancyApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.SetVacancyApplicationStatus(c.Request.Context(), c.Param("id"), userID, models.VacancyApplicationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": application})
}
