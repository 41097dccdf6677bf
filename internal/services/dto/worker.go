package dto

import "ishtop_backend/internal/models"

// --- Worker Requests ---

type SearchWorkersRequest struct {
	City             string   `form:"city" validate:"omitempty,max=100"`
	SpecializationID string   `form:"specialization" validate:"omitempty,max=50"`
	WorkerType       string   `form:"workerType" validate:"omitempty,is-worker-type"`
	MinRating        *float64 `form:"minRating" validate:"omitempty,min=0,max=5"`
	Search           string   `form:"search" validate:"omitempty,max=200"`
	Page             int      `form:"page"`
	Limit            int      `form:"limit"`
}

// --- Worker Responses ---

// WorkerCard - строка каталога исполнителей с живым рейтингом.
type WorkerCard struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	City            string            `json:"city"`
	WorkerType      models.WorkerType `json:"worker_type,omitempty"`
	AvatarURL       string            `json:"avatar_url,omitempty"`
	About           string            `json:"about,omitempty"`
	Skills          []string          `json:"skills"`
	Specializations []string          `json:"specializations"`
	AverageRating   float64           `json:"average_rating"`
	TotalReviews    int64             `json:"total_reviews"`
}

type WorkerListResponse struct {
	Workers []WorkerCard `json:"workers"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	HasMore bool         `json:"hasMore"`
}

// WorkerProfile - полный публичный профиль исполнителя.
type WorkerProfile struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Phone           string            `json:"phone"`
	City            string            `json:"city"`
	WorkerType      models.WorkerType `json:"worker_type,omitempty"`
	About           string            `json:"about,omitempty"`
	AvatarURL       string            `json:"avatar_url,omitempty"`
	Skills          []string          `json:"skills"`
	Languages       []string          `json:"languages"`
	Specializations []string          `json:"specializations"`
	Education       []map[string]any  `json:"education"`
	WorkExperience  []map[string]any  `json:"work_experience"`
	WorkPhotos      []string          `json:"work_photos"`
	AverageRating   float64           `json:"average_rating"`
	TotalReviews    int64             `json:"total_reviews"`
	CompletedJobs   int64             `json:"completed_jobs"`
}
