package dto

import (
	"time"

	"ishtop_backend/internal/models"
)

// --- Order Requests ---

type CreateOrderRequest struct {
	Title            string     `json:"title" validate:"required,max=70"`
	Description      string     `json:"description" validate:"required,max=500"`
	City             string     `json:"city" validate:"required,max=100"`
	Address          string     `json:"address" validate:"omitempty,max=200"`
	SpecializationID string     `json:"specialization_id" validate:"omitempty,max=50"`
	Budget           float64    `json:"budget" validate:"omitempty,min=0"`
	WorkersNeeded    int        `json:"workers_needed" validate:"omitempty,min=1,max=100"`
	ServiceDate      *time.Time `json:"service_date"`
	TransportPaid    bool       `json:"transport_paid"`
	MealIncluded     bool       `json:"meal_included"`
}

type CreateVacancyRequest struct {
	JobTitle         string   `json:"job_title" validate:"required,max=100"`
	Description      string   `json:"description" validate:"required,max=2000"`
	SpecializationID string   `json:"specialization_id" validate:"required,max=50"`
	ExperienceLevel  string   `json:"experience_level" validate:"required,max=50"`
	City             string   `json:"city" validate:"required,max=100"`
	EmploymentType   string   `json:"employment_type" validate:"omitempty,max=50"`
	WorkFormat       string   `json:"work_format" validate:"omitempty,max=50"`
	SalaryFrom       float64  `json:"salary_from" validate:"omitempty,min=0"`
	SalaryTo         float64  `json:"salary_to" validate:"omitempty,min=0,gtefield=SalaryFrom"`
	SalaryPeriod     string   `json:"salary_period" validate:"omitempty,max=20"`
	SalaryType       string   `json:"salary_type" validate:"omitempty,max=20"`
	Skills           []string `json:"skills" validate:"required,min=1,dive,max=80"`
	Languages        []string `json:"languages" validate:"required,min=1,dive,max=40"`
}

type SearchOrdersRequest struct {
	City             string   `form:"city" validate:"omitempty,max=100"`
	SpecializationID string   `form:"category" validate:"omitempty,max=50"`
	MinBudget        *float64 `form:"minBudget" validate:"omitempty,min=0"`
	MaxBudget        *float64 `form:"maxBudget" validate:"omitempty,min=0"`
	MinSalary        *float64 `form:"minSalary" validate:"omitempty,min=0"`
	MaxSalary        *float64 `form:"maxSalary" validate:"omitempty,min=0"`
	Search           string   `form:"search" validate:"omitempty,max=200"`
	Page             int      `form:"page"`
	Limit            int      `form:"limit"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed cancelled"`
}

// --- Order Responses ---

// OrderOwner - публичные поля владельца, подмешиваемые в карточку.
type OrderOwner struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CompanyName string          `json:"company_name,omitempty"`
	Phone       string          `json:"phone"`
	Role        models.UserRole `json:"role"`
}

type OrderResponse struct {
	models.Order
	Owner *OrderOwner `json:"owner,omitempty"`
}

type OrderListResponse struct {
	Orders  []models.Order `json:"orders"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

// CategoryStat - категорийная плитка для витрины.
type CategoryStat struct {
	SpecializationID string  `json:"specialization_id"`
	Name             string  `json:"name"`
	NameUz           string  `json:"name_uz"`
	Icon             string  `json:"icon"`
	Count            int     `json:"count"`
	MinAmount        float64 `json:"min_amount"`
	MaxAmount        float64 `json:"max_amount"`
}

type CategoryStatsResponse struct {
	Categories  []CategoryStat `json:"categories"`
	TotalOrders int            `json:"totalOrders"`
}
