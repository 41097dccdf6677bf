package repositories

import (
	"context"
	"errors"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicantNotFound = errors.New("applicant not found")
	ErrAlreadyApplied    = errors.New("worker already applied to this order")
)

type ApplicantRepository interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	FindByID(ctx context.Context, id string) (*models.Applicant, error)
	ExistsForOrderAndWorker(ctx context.Context, orderID, workerID string) (bool, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.Applicant, error)
	ListByWorker(ctx context.Context, workerID string) ([]models.Applicant, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicantStatus) error
	CountAcceptedByOrder(ctx context.Context, orderID string) (int64, error)
	CountCompletedByWorker(ctx context.Context, workerID string) (int64, error)
}

type ApplicantRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &ApplicantRepositoryImpl{db: db}
}

// Create вставляет отклик. Нарушение уникального индекса
// (order_id, worker_id) переводится в ErrAlreadyApplied: это второй
// рубеж дедупликации после проверки существования в сервисе.
func (r *ApplicantRepositoryImpl) Create(ctx context.Context, applicant *models.Applicant) error {
	err := r.db.WithContext(ctx).Create(applicant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyApplied
	}
	return err
}

func (r *ApplicantRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := r.db.WithContext(ctx).First(&applicant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *ApplicantRepositoryImpl) ExistsForOrderAndWorker(ctx context.Context, orderID, workerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Applicant{}).
		Where("order_id = ? AND worker_id = ?", orderID, workerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicantRepositoryImpl) ListByOrder(ctx context.Context, orderID string) ([]models.Applicant, error) {
	// Пустой список должен сериализоваться как [], не null.
	applicants := []models.Applicant{}
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("applied_at DESC").
		Find(&applicants).Error
	return applicants, err
}

func (r *ApplicantRepositoryImpl) ListByWorker(ctx context.Context, workerID string) ([]models.Applicant, error) {
	applicants := []models.Applicant{}
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("applied_at DESC").
		Find(&applicants).Error
	return applicants, err
}

func (r *ApplicantRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.ApplicantStatus) error {
	return r.db.WithContext(ctx).Model(&models.Applicant{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *ApplicantRepositoryImpl) CountAcceptedByOrder(ctx context.Context, orderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Applicant{}).
		Where("order_id = ? AND status = ?", orderID, models.ApplicantStatusAccepted).
		Count(&count).Error
	return count, err
}

func (r *ApplicantRepositoryImpl) CountCompletedByWorker(ctx context.Context, workerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Applicant{}).
		Where("worker_id = ? AND status = ?", workerID, models.ApplicantStatusCompleted).
		Count(&count).Error
	return count, err
}
