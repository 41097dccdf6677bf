package repositories

import (
	"context"
	"errors"
	"time"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type SessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken возвращает живую сессию. Просроченная строка удаляется
// тут же (ленивая чистка) и наружу отдается как отсутствующая.
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.ExpiresAt.Before(time.Now()) {
		_ = r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}

func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "user_id = ?", userID).Error
}
