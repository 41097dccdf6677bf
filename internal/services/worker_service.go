package services

import (
	"context"
	"math"

	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/repositories"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
)

type WorkerService struct {
	userRepo      repositories.UserRepository
	reviewRepo    repositories.ReviewRepository
	applicantRepo repositories.ApplicantRepository
}

func NewWorkerService(
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
	applicantRepo repositories.ApplicantRepository,
) *WorkerService {
	return &WorkerService{
		userRepo:      userRepo,
		reviewRepo:    reviewRepo,
		applicantRepo: applicantRepo,
	}
}

// Browse - каталог исполнителей. Рейтинги подтягиваются одним bulk-запросом
// по странице выдачи. Фильтр minRating применяется уже к загруженной
// странице: рейтинг живет в отзывах, а не в строке пользователя, поэтому
// страница после фильтра может быть неполной.
func (s *WorkerService) Browse(ctx context.Context, req dto.SearchWorkersRequest) (*dto.WorkerListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	filter := repositories.WorkerFilter{
		City:             req.City,
		SpecializationID: req.SpecializationID,
		WorkerType:       models.WorkerType(req.WorkerType),
		Search:           req.Search,
		Page:             page,
		Limit:            limit,
	}

	workers, total, err := s.userRepo.SearchWorkers(ctx, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
	}

	stats, err := s.reviewRepo.StatsForWorkers(ctx, ids)
	if err != nil {
		logger.CtxWithError(ctx, "bulk rating lookup failed", err)
		stats = map[string]repositories.RatingStats{}
	}

	cards := make([]dto.WorkerCard, 0, len(workers))
	for _, w := range workers {
		st := stats[w.ID]
		rating := roundRating(st.AverageRating)
		if req.MinRating != nil && rating < *req.MinRating {
			continue
		}
		cards = append(cards, dto.WorkerCard{
			ID:              w.ID,
			Name:            w.Name,
			City:            w.City,
			WorkerType:      w.WorkerType,
			AvatarURL:       w.AvatarURL,
			About:           w.About,
			Skills:          models.StringList(w.Skills),
			Specializations: models.StringList(w.Specializations),
			AverageRating:   rating,
			TotalReviews:    st.TotalReviews,
		})
	}

	return &dto.WorkerListResponse{
		Workers: cards,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: total > int64(page*limit),
	}, nil
}

// GetProfile собирает публичный профиль: строка пользователя, рейтинг и
// число завершенных работ тремя параллельными запросами.
func (s *WorkerService) GetProfile(ctx context.Context, workerID string) (*dto.WorkerProfile, error) {
	var (
		user      *models.User
		stats     *repositories.RatingStats
		completed int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.userRepo.FindByID(gctx, workerID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.reviewRepo.StatsForWorker(gctx, workerID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.applicantRepo.CountCompletedByWorker(gctx, workerID)
		return err
	})

	if err := g.Wait(); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role != models.UserRoleWorker {
		return nil, apperrors.ErrWorkerNotFound
	}

	return &dto.WorkerProfile{
		ID:              user.ID,
		Name:            user.Name,
		Phone:           user.Phone,
		City:            user.City,
		WorkerType:      user.WorkerType,
		About:           user.About,
		AvatarURL:       user.AvatarURL,
		Skills:          models.StringList(user.Skills),
		Languages:       models.StringList(user.Languages),
		Specializations: models.StringList(user.Specializations),
		Education:       models.ObjectList(user.Education),
		WorkExperience:  models.ObjectList(user.WorkExperience),
		WorkPhotos:      models.StringList(user.WorkPhotos),
		AverageRating:   roundRating(stats.AverageRating),
		TotalReviews:    stats.TotalReviews,
		CompletedJobs:   completed,
	}, nil
}

// roundRating приводит средний рейтинг к одному знаку после запятой.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
