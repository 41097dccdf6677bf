package repositories

import (
	"context"
	"errors"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVacancyApplicationNotFound = errors.New("vacancy application not found")

type VacancyApplicationRepository interface {
	Create(ctx context.Context, application *models.VacancyApplication) error
	FindByID(ctx context.Context, id string) (*models.VacancyApplication, error)
	ExistsForVacancyAndApplicant(ctx context.Context, vacancyID, applicantID string) (bool, error)
	ListByVacancy(ctx context.Context, vacancyID string) ([]models.VacancyApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.VacancyApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.VacancyApplicationStatus) error
}

type VacancyApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewVacancyApplicationRepository(db *gorm.DB) VacancyApplicationRepository {
	return &VacancyApplicationRepositoryImpl{db: db}
}

func (r *VacancyApplicationRepositoryImpl) Create(ctx context.Context, application *models.VacancyApplication) error {
	err := r.db.WithContext(ctx).Create(application).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyApplied
	}
	return err
}

func (r *VacancyApplicationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.VacancyApplication, error) {
	var application models.VacancyApplication
	err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVacancyApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *VacancyApplicationRepositoryImpl) ExistsForVacancyAndApplicant(ctx context.Context, vacancyID, applicantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VacancyApplication{}).
		Where("vacancy_id = ? AND applicant_id = ?", vacancyID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *VacancyApplicationRepositoryImpl) ListByVacancy(ctx context.Context, vacancyID string) ([]models.VacancyApplication, error) {
	// Пустой список должен сериализоваться как [], не null.
	applications := []models.VacancyApplication{}
	err := r.db.WithContext(ctx).
		Where("vacancy_id = ?", vacancyID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *VacancyApplicationRepositoryImpl) ListByApplicant(ctx context.Context, applicantID string) ([]models.VacancyApplication, error) {
	applications := []models.VacancyApplication{}
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *VacancyApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.VacancyApplicationStatus) error {
	return r.db.WithContext(ctx).Model(&models.VacancyApplication{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}
