package handlers

import (
	"net/http"

	"ishtop_backend/internal/services"
	"ishtop_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// WorkerHandler - публичный каталог исполнителей.
type WorkerHandler struct {
	*BaseHandler
	workerService *services.WorkerService
	reviewService *services.ReviewService
}

func NewWorkerHandler(base *BaseHandler, workerService *services.WorkerService, reviewService *services.ReviewService) *WorkerHandler {
	return &WorkerHandler{
		BaseHandler:   base,
		workerService: workerService,
		reviewService: reviewService,
	}
}

func (h *WorkerHandler) RegisterRoutes(r *gin.RouterGroup) {
	workers := r.Group("/workers")
	{
		workers.GET("", h.List)
		workers.GET("/:id", h.Get)
		workers.GET("/:id/reviews", h.ListReviews)
	}
}

// List - GET /workers
func (h *WorkerHandler) List(c *gin.Context) {
	var req dto.SearchWorkersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.workerService.Browse(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get - GET /workers/:id
func (h *WorkerHandler) Get(c *gin.Context) {
	profile, err := h.workerService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// ListReviews - GET /workers/:id/reviews
func (h *WorkerHandler) ListReviews(c *gin.Context) {
	page, limit := h.ParsePagination(c)

	resp, err := h.reviewService.ListForWorker(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
