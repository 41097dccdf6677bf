package services

import (
	"context"
	"time"

	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/repositories"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"
)

type ApplicationService struct {
	orderRepo      repositories.OrderRepository
	applicantRepo  repositories.ApplicantRepository
	vacancyAppRepo repositories.VacancyApplicationRepository
	reviewRepo     repositories.ReviewRepository
}

func NewApplicationService(
	orderRepo repositories.OrderRepository,
	applicantRepo repositories.ApplicantRepository,
	vacancyAppRepo repositories.VacancyApplicationRepository,
	reviewRepo repositories.ReviewRepository,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:      orderRepo,
		applicantRepo:  applicantRepo,
		vacancyAppRepo: vacancyAppRepo,
		reviewRepo:     reviewRepo,
	}
}

// Apply - отклик исполнителя на daily-заказ.
// В строку отклика снимается профиль исполнителя (имя, телефон, рейтинг,
// число завершенных работ). Счетчики заказа обновляются атомарным UPDATE
// после вставки; сбой счетчиков логируется, но отклик не откатывает.
func (s *ApplicationService) Apply(ctx context.Context, orderID string, worker *models.User, req dto.ApplyRequest) (*models.Applicant, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID, models.OrderTypeDaily)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !orderAcceptsApplications(order.Status) {
		return nil, apperrors.ErrOrderClosed
	}

	exists, err := s.applicantRepo.ExistsForOrderAndWorker(ctx, orderID, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	rating, completedJobs := s.workerSnapshot(ctx, worker.ID)

	applicant := &models.Applicant{
		OrderID:       orderID,
		WorkerID:      worker.ID,
		WorkerName:    worker.Name,
		WorkerPhone:   worker.Phone,
		Rating:        rating,
		CompletedJobs: completedJobs,
		Message:       req.Message,
		ProposedPrice: req.ProposedPrice,
		Status:        models.ApplicantStatusPending,
		AppliedAt:     time.Now(),
	}
	if err := s.applicantRepo.Create(ctx, applicant); err != nil {
		// Уникальный индекс поймал гонку двух одновременных откликов.
		if err == repositories.ErrAlreadyApplied {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.orderRepo.RegisterApplication(ctx, orderID); err != nil {
		logger.CtxWithError(ctx, "order counters update failed", err, "order_id", orderID)
	}

	logger.CtxInfo(ctx, "worker applied", "order_id", orderID, "worker_id", worker.ID)
	return applicant, nil
}

// ApplyToVacancy - отклик на вакансию, та же семантика с cover letter.
func (s *ApplicationService) ApplyToVacancy(ctx context.Context, vacancyID string, worker *models.User, req dto.ApplyVacancyRequest) (*models.VacancyApplication, error) {
	order, err := s.orderRepo.FindByID(ctx, vacancyID, models.OrderTypeVacancy)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !orderAcceptsApplications(order.Status) {
		return nil, apperrors.ErrOrderClosed
	}

	exists, err := s.vacancyAppRepo.ExistsForVacancyAndApplicant(ctx, vacancyID, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.VacancyApplication{
		VacancyID:   vacancyID,
		ApplicantID: worker.ID,
		CoverLetter: req.CoverLetter,
		Status:      models.VacancyApplicationStatusPending,
	}
	if err := s.vacancyAppRepo.Create(ctx, application); err != nil {
		if err == repositories.ErrAlreadyApplied {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.orderRepo.RegisterApplication(ctx, vacancyID); err != nil {
		logger.CtxWithError(ctx, "vacancy counters update failed", err, "vacancy_id", vacancyID)
	}

	logger.CtxInfo(ctx, "vacancy application created", "vacancy_id", vacancyID, "applicant_id", worker.ID)
	return application, nil
}

// ListApplicants возвращает отклики на заказ. Только владельцу.
func (s *ApplicationService) ListApplicants(ctx context.Context, orderID, customerID string, orderType models.OrderType) ([]models.Applicant, []models.VacancyApplication, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID, orderType)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, nil, apperrors.ErrOrderNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}
	if order.CustomerID != customerID {
		return nil, nil, apperrors.ErrNotOrderOwner
	}

	if orderType == models.OrderTypeVacancy {
		applications, err := s.vacancyAppRepo.ListByVacancy(ctx, orderID)
		if err != nil {
			return nil, nil, apperrors.InternalError(err)
		}
		return nil, applications, nil
	}

	applicants, err := s.applicantRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return applicants, nil, nil
}

// ListMyApplications - история откликов исполнителя по обеим схемам:
// daily-заказы и вакансии одним ответом.
func (s *ApplicationService) ListMyApplications(ctx context.Context, workerID string) ([]models.Applicant, []models.VacancyApplication, error) {
	applicants, err := s.applicantRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	applications, err := s.vacancyAppRepo.ListByApplicant(ctx, workerID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	return applicants, applications, nil
}

// SetApplicantStatus - владелец принимает или отклоняет отклик.
// pending_applicants_count уменьшается только при уходе ИЗ pending,
// чтобы повторный PATCH не увел счетчик в минус.
func (s *ApplicationService) SetApplicantStatus(ctx context.Context, applicationID, customerID string, status models.ApplicantStatus) (*models.Applicant, error) {
	if status != models.ApplicantStatusAccepted && status != models.ApplicantStatusRejected {
		return nil, apperrors.ErrInvalidApplicationStatus
	}

	applicant, err := s.applicantRepo.FindByID(ctx, applicationID)
	if err != nil {
		if err == repositories.ErrApplicantNotFound {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	order, err := s.orderRepo.FindByID(ctx, applicant.OrderID, models.OrderTypeDaily)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if order.CustomerID != customerID {
		return nil, apperrors.ErrNotOrderOwner
	}

	wasPending := applicant.Status == models.ApplicantStatusPending

	if err := s.applicantRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if wasPending {
		if err := s.orderRepo.DecrementPending(ctx, applicant.OrderID); err != nil {
			logger.CtxWithError(ctx, "pending counter decrement failed", err, "order_id", applicant.OrderID)
		}
	}

	if status == models.ApplicantStatusAccepted {
		accepted, err := s.applicantRepo.CountAcceptedByOrder(ctx, applicant.OrderID)
		if err == nil && order.WorkersNeeded > 0 && accepted > int64(order.WorkersNeeded) {
			// Лимит исполнителей не жесткий: заказчик волен принять
			// больше людей, чем заявлял. Фиксируем для аналитики.
			logger.CtxWarn(ctx, "accepted above workers_needed",
				"order_id", applicant.OrderID, "accepted", accepted, "workers_needed", order.WorkersNeeded)
		}
	}

	applicant.Status = status
	return applicant, nil
}

// SetVacancyApplicationStatus - то же для вакансий.
func (s *ApplicationService) SetVacancyApplicationStatus(ctx context.Context, applicationID, customerID string, status models.VacancyApplicationStatus) (*models.VacancyApplication, error) {
	if status != models.VacancyApplicationStatusAccepted && status != models.VacancyApplicationStatusRejected {
		return nil, apperrors.ErrInvalidApplicationStatus
	}

	application, err := s.vacancyAppRepo.FindByID(ctx, applicationID)
	if err != nil {
		if err == repositories.ErrVacancyApplicationNotFound {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	order, err := s.orderRepo.FindByID(ctx, application.VacancyID, models.OrderTypeVacancy)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if order.CustomerID != customerID {
		return nil, apperrors.ErrNotOrderOwner
	}

	wasPending := application.Status == models.VacancyApplicationStatusPending

	if err := s.vacancyAppRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if wasPending {
		if err := s.orderRepo.DecrementPending(ctx, application.VacancyID); err != nil {
			logger.CtxWithError(ctx, "pending counter decrement failed", err, "vacancy_id", application.VacancyID)
		}
	}

	application.Status = status
	return application, nil
}

// workerSnapshot собирает рейтинг и число завершенных работ для снимка
// в строке отклика. Ошибки не фатальны: отклик важнее витринных цифр.
func (s *ApplicationService) workerSnapshot(ctx context.Context, workerID string) (float64, int) {
	var rating float64
	if stats, err := s.reviewRepo.StatsForWorker(ctx, workerID); err == nil {
		rating = roundRating(stats.AverageRating)
	} else {
		logger.CtxWithError(ctx, "worker rating lookup failed", err, "worker_id", workerID)
	}

	var completed int
	if n, err := s.applicantRepo.CountCompletedByWorker(ctx, workerID); err == nil {
		completed = int(n)
	} else {
		logger.CtxWithError(ctx, "completed jobs lookup failed", err, "worker_id", workerID)
	}

	return rating, completed
}

func orderAcceptsApplications(status models.OrderStatus) bool {
	for _, active := range models.ActiveOrderStatuses {
		if status == active {
			return true
		}
	}
	return false
}
