package models

import "time"

// Applicant - отклик исполнителя на daily-объявление.
// Поля worker_name/worker_phone/rating/completed_jobs - снимок профиля
// на момент отклика; с последующими правками профиля не синхронизируются.
// Уникальный индекс (order_id, worker_id) - страховка от гонки двух
// одновременных откликов одного исполнителя.
type Applicant struct {
	ID            string          `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID       string          `gorm:"type:uuid;not null;uniqueIndex:idx_applicants_order_worker" json:"order_id"`
	WorkerID      string          `gorm:"type:uuid;not null;uniqueIndex:idx_applicants_order_worker" json:"worker_id"`
	WorkerName    string          `json:"worker_name"`
	WorkerPhone   string          `json:"worker_phone"`
	Rating        float64         `json:"rating"`
	CompletedJobs int             `json:"completed_jobs"`
	Message       string          `json:"message,omitempty"`
	ProposedPrice float64         `json:"proposed_price,omitempty"`
	Status        ApplicantStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AppliedAt     time.Time       `gorm:"default:now()" json:"applied_at"`
}

// VacancyApplication - отклик на вакансию. Параллельная схема с той же
// семантикой дедупликации и счетчиков, но своим набором полей.
type VacancyApplication struct {
	BaseModel
	VacancyID   string                   `gorm:"type:uuid;not null;uniqueIndex:idx_vacancy_applications_pair" json:"vacancy_id"`
	ApplicantID string                   `gorm:"type:uuid;not null;uniqueIndex:idx_vacancy_applications_pair" json:"applicant_id"`
	CoverLetter string                   `json:"cover_letter,omitempty"`
	Status      VacancyApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
