package repositories

import (
	"context"
	"errors"
	"time"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOtpNotFound = errors.New("otp code not found")

type OtpRepository interface {
	CreatePhone(ctx context.Context, code *models.OtpCode) error
	FindActiveByPhone(ctx context.Context, phone string, now time.Time) (*models.OtpCode, error)
	IncrementPhoneAttempts(ctx context.Context, id string) error
	MarkPhoneVerified(ctx context.Context, id string) error

	CreateEmail(ctx context.Context, code *models.EmailOtpCode) error
	FindActiveByEmail(ctx context.Context, email string, now time.Time) (*models.EmailOtpCode, error)
	IncrementEmailAttempts(ctx context.Context, id string) error
	MarkEmailVerified(ctx context.Context, id string) error

	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type OtpRepositoryImpl struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

func (r *OtpRepositoryImpl) CreatePhone(ctx context.Context, code *models.OtpCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// FindActiveByPhone возвращает последний живой код для номера.
func (r *OtpRepositoryImpl) FindActiveByPhone(ctx context.Context, phone string, now time.Time) (*models.OtpCode, error) {
	var code models.OtpCode
	err := r.db.WithContext(ctx).
		Where("phone = ? AND verified = false AND expires_at > ?", phone, now).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *OtpRepositoryImpl) IncrementPhoneAttempts(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.OtpCode{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *OtpRepositoryImpl) MarkPhoneVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.OtpCode{}).
		Where("id = ?", id).
		UpdateColumn("verified", true).Error
}

func (r *OtpRepositoryImpl) CreateEmail(ctx context.Context, code *models.EmailOtpCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *OtpRepositoryImpl) FindActiveByEmail(ctx context.Context, email string, now time.Time) (*models.EmailOtpCode, error) {
	var code models.EmailOtpCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND verified = false AND expires_at > ?", email, now).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *OtpRepositoryImpl) IncrementEmailAttempts(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.EmailOtpCode{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *OtpRepositoryImpl) MarkEmailVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.EmailOtpCode{}).
		Where("id = ?", id).
		UpdateColumn("verified", true).Error
}

func (r *OtpRepositoryImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.OtpCode{})
	if result.Error != nil {
		return 0, result.Error
	}
	deleted := result.RowsAffected

	emailResult := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.EmailOtpCode{})
	if emailResult.Error != nil {
		return deleted, emailResult.Error
	}
	return deleted + emailResult.RowsAffected, nil
}
