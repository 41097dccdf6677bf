package models

type UserRole string
type WorkerType string
type OrderType string
type OrderStatus string
type ApplicantStatus string
type VacancyApplicationStatus string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleWorker   UserRole = "worker"

	WorkerTypeDaily        WorkerType = "daily_worker"
	WorkerTypeProfessional WorkerType = "professional"
	WorkerTypeJobSeeker    WorkerType = "job_seeker"

	OrderTypeDaily   OrderType = "daily"
	OrderTypeVacancy OrderType = "vacancy"

	// Жизненный цикл объявления:
	// new -> response_received -> in_progress -> completed,
	// cancelled/rejected - альтернативные терминальные статусы.
	OrderStatusNew              OrderStatus = "new"
	OrderStatusResponseReceived OrderStatus = "response_received"
	OrderStatusInProgress       OrderStatus = "in_progress"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusRejected         OrderStatus = "rejected"

	ApplicantStatusPending   ApplicantStatus = "pending"
	ApplicantStatusAccepted  ApplicantStatus = "accepted"
	ApplicantStatusRejected  ApplicantStatus = "rejected"
	ApplicantStatusCompleted ApplicantStatus = "completed"
	ApplicantStatusCancelled ApplicantStatus = "cancelled"

	VacancyApplicationStatusPending   VacancyApplicationStatus = "pending"
	VacancyApplicationStatusAccepted  VacancyApplicationStatus = "accepted"
	VacancyApplicationStatusRejected  VacancyApplicationStatus = "rejected"
	VacancyApplicationStatusWithdrawn VacancyApplicationStatus = "withdrawn"
)

// ActiveOrderStatuses - статусы, видимые в публичных списках.
// in_progress/completed/cancelled/rejected в выдачу не попадают.
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusResponseReceived,
}
