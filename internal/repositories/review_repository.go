package repositories

import (
	"context"
	"errors"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this order")
)

// RatingStats - живой агрегат по отзывам исполнителя.
type RatingStats struct {
	AverageRating float64
	TotalReviews  int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ExistsForOrderAndCustomer(ctx context.Context, orderID, customerID string) (bool, error)
	ListByWorker(ctx context.Context, workerID string, page, limit int) ([]models.Review, int64, error)
	StatsForWorker(ctx context.Context, workerID string) (*RatingStats, error)
	StatsForWorkers(ctx context.Context, workerIDs []string) (map[string]RatingStats, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReviewAlreadyExists
	}
	return err
}

func (r *ReviewRepositoryImpl) ExistsForOrderAndCustomer(ctx context.Context, orderID, customerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("order_id = ? AND customer_id = ?", orderID, customerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) ListByWorker(ctx context.Context, workerID string, page, limit int) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("worker_id = ?", workerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Пустая страница должна сериализоваться как [], не null.
	reviews := []models.Review{}
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) StatsForWorker(ctx context.Context, workerID string) (*RatingStats, error) {
	var row struct {
		Avg   float64
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("worker_id = ?", workerID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &RatingStats{AverageRating: row.Avg, TotalReviews: row.Total}, nil
}

// StatsForWorkers считает агрегаты пачкой для страницы каталога,
// чтобы не ходить в базу по одному исполнителю.
func (r *ReviewRepositoryImpl) StatsForWorkers(ctx context.Context, workerIDs []string) (map[string]RatingStats, error) {
	stats := make(map[string]RatingStats, len(workerIDs))
	if len(workerIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		WorkerID string
		Avg      float64
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("worker_id, COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("worker_id IN ?", workerIDs).
		Group("worker_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.WorkerID] = RatingStats{AverageRating: row.Avg, TotalReviews: row.Total}
	}
	return stats, nil
}
