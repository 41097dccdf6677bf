package dto

import "ishtop_backend/internal/models"

// --- Application Requests ---

type ApplyRequest struct {
	Message       string  `json:"message" validate:"omitempty,max=500"`
	ProposedPrice float64 `json:"proposed_price" validate:"omitempty,min=0"`
}

type ApplyVacancyRequest struct {
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=2000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,is-application-status"`
}

// --- Application Responses ---

// MyApplicationsResponse - отклики исполнителя по обеим схемам.
type MyApplicationsResponse struct {
	Success             bool                        `json:"success"`
	Applications        []models.Applicant          `json:"applications"`
	VacancyApplications []models.VacancyApplication `json:"vacancy_applications"`
}
