package dto

import "ishtop_backend/internal/models"

// --- Review Requests ---

type CreateReviewRequest struct {
	OrderID  string `json:"order_id" validate:"required,uuid4"`
	WorkerID string `json:"worker_id" validate:"required,uuid4"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=1000"`
}

// --- Review Responses ---

type ReviewListResponse struct {
	Reviews []models.Review `json:"reviews"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	HasMore bool            `json:"hasMore"`
}
