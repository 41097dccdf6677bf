package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order - объявление заказчика: разовая работа (daily) или вакансия (vacancy).
// Дискриминатор - поле Type, наборы опциональных полей расходятся.
type Order struct {
	BaseModel
	Type             OrderType   `gorm:"type:varchar(10);not null;index" json:"type"`
	CustomerID       string      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Status           OrderStatus `gorm:"type:varchar(20);default:'new';index" json:"status"`
	City             string      `gorm:"index" json:"city"`
	Address          string      `json:"address,omitempty"`
	SpecializationID string      `gorm:"index" json:"specialization_id,omitempty"`

	// Денормализованные счетчики. Инвариант: applicants_count равен числу
	// строк откликов, pending_applicants_count - числу откликов в статусе
	// pending. Поддерживаются атомарными UPDATE ... SET n = n + 1.
	ApplicantsCount        int `gorm:"default:0" json:"applicants_count"`
	PendingApplicantsCount int `gorm:"default:0" json:"pending_applicants_count"`
	ViewsCount             int `gorm:"default:0" json:"views_count"`

	// Только для daily
	Budget        float64    `json:"budget,omitempty"`
	WorkersNeeded int        `gorm:"default:1" json:"workers_needed,omitempty"`
	ServiceDate   *time.Time `json:"service_date,omitempty"`
	TransportPaid bool       `json:"transport_paid,omitempty"`
	MealIncluded  bool       `json:"meal_included,omitempty"`

	// Только для vacancy
	JobTitle        string         `json:"job_title,omitempty"`
	ExperienceLevel string         `json:"experience_level,omitempty"`
	EmploymentType  string         `json:"employment_type,omitempty"`
	WorkFormat      string         `json:"work_format,omitempty"`
	SalaryFrom      float64        `json:"salary_from,omitempty"`
	SalaryTo        float64        `json:"salary_to,omitempty"`
	SalaryPeriod    string         `json:"salary_period,omitempty"`
	SalaryType      string         `json:"salary_type,omitempty"`
	Skills          datatypes.JSON `gorm:"type:jsonb" json:"skills,omitempty"`
	Languages       datatypes.JSON `gorm:"type:jsonb" json:"languages,omitempty"`
}

// OrderPhoneView - факт просмотра телефона заказчика. Best-effort
// аналитика: ошибки записи глотаются, ответ пользователю не блокируется.
type OrderPhoneView struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;index" json:"order_id"`
	ViewerID  string    `gorm:"type:uuid;index" json:"viewer_id,omitempty"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

type OrderPhoneCall struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;index" json:"order_id"`
	CallerID  string    `gorm:"type:uuid;index" json:"caller_id,omitempty"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}
