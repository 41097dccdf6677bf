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

type ReviewService struct {
	reviewRepo    repositories.ReviewRepository
	orderRepo     repositories.OrderRepository
	applicantRepo repositories.ApplicantRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	orderRepo repositories.OrderRepository,
	applicantRepo repositories.ApplicantRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		orderRepo:     orderRepo,
		applicantRepo: applicantRepo,
	}
}

// Create - отзыв заказчика об исполнителе по завершенному заказу.
// Цепочка проверок: заказ существует -> вызывающий владелец -> заказ
// завершен -> исполнитель действительно откликался -> отзыва еще нет.
// Имя заказчика и заголовок заказа снимаются в строку отзыва.
func (s *ReviewService) Create(ctx context.Context, customer *models.User, req dto.CreateReviewRequest) (*models.Review, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID, models.OrderTypeDaily)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if order.CustomerID != customer.ID {
		return nil, apperrors.ErrNotOrderOwner
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, apperrors.ErrOrderNotCompleted
	}

	applied, err := s.applicantRepo.ExistsForOrderAndWorker(ctx, req.OrderID, req.WorkerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !applied {
		return nil, apperrors.ErrApplicationNotFound
	}

	exists, err := s.reviewRepo.ExistsForOrderAndCustomer(ctx, req.OrderID, customer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrReviewAlreadyExists
	}

	review := &models.Review{
		OrderID:      req.OrderID,
		CustomerID:   customer.ID,
		WorkerID:     req.WorkerID,
		CustomerName: customer.Name,
		Rating:       req.Rating,
		Comment:      req.Comment,
		OrderTitle:   order.Title,
		CreatedAt:    time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// Страховка уникального индекса (order_id, customer_id).
		if err == repositories.ErrReviewAlreadyExists {
			return nil, apperrors.ErrReviewAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "review created", "order_id", req.OrderID, "worker_id", req.WorkerID, "rating", req.Rating)
	return review, nil
}

// ListForWorker - отзывы об исполнителе, новые первыми.
func (s *ReviewService) ListForWorker(ctx context.Context, workerID string, page, limit int) (*dto.ReviewListResponse, error) {
	page, limit = normalizePage(page, limit)

	reviews, total, err := s.reviewRepo.ListByWorker(ctx, workerID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ReviewListResponse{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: total > int64(page*limit),
	}, nil
}
