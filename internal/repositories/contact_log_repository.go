package repositories

import (
	"context"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

// ContactLogRepository пишет best-effort аналитику контактов.
// Вызывающие глотают ошибки этих операций.
type ContactLogRepository interface {
	LogPhoneView(ctx context.Context, view *models.OrderPhoneView) error
	LogPhoneCall(ctx context.Context, call *models.OrderPhoneCall) error
}

type ContactLogRepositoryImpl struct {
	db *gorm.DB
}

func NewContactLogRepository(db *gorm.DB) ContactLogRepository {
	return &ContactLogRepositoryImpl{db: db}
}

func (r *ContactLogRepositoryImpl) LogPhoneView(ctx context.Context, view *models.OrderPhoneView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *ContactLogRepositoryImpl) LogPhoneCall(ctx context.Context, call *models.OrderPhoneCall) error {
	return r.db.WithContext(ctx).Create(call).Error
}
