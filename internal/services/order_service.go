package services

import (
	"context"
	"sort"
	"time"

	"ishtop_backend/internal/catalog"
	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/repositories"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"
)

// Разрешенные переходы статуса заказа владельцем.
// Терминальные статусы (completed, cancelled, rejected) не покидаются.
var orderStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusInProgress: {models.OrderStatusNew, models.OrderStatusResponseReceived},
	models.OrderStatusCompleted:  {models.OrderStatusInProgress},
	models.OrderStatusCancelled:  {models.OrderStatusNew, models.OrderStatusResponseReceived, models.OrderStatusInProgress},
}

type OrderService struct {
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactLogRepository
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	contactRepo repositories.ContactLogRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
	}
}

// CreateDaily публикует разовый заказ. Роль проверяет middleware,
// сюда приходит уже подтвержденный заказчик.
func (s *OrderService) CreateDaily(ctx context.Context, customerID string, req dto.CreateOrderRequest) (*models.Order, error) {
	order := &models.Order{
		Type:             models.OrderTypeDaily,
		CustomerID:       customerID,
		Title:            req.Title,
		Description:      req.Description,
		Status:           models.OrderStatusNew,
		City:             req.City,
		Address:          req.Address,
		SpecializationID: req.SpecializationID,
		Budget:           req.Budget,
		WorkersNeeded:    req.WorkersNeeded,
		ServiceDate:      req.ServiceDate,
		TransportPaid:    req.TransportPaid,
		MealIncluded:     req.MealIncluded,
	}
	if order.WorkersNeeded <= 0 {
		order.WorkersNeeded = 1
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "daily order created", "order_id", order.ID, "city", order.City)
	return order, nil
}

// CreateVacancy публикует вакансию.
func (s *OrderService) CreateVacancy(ctx context.Context, customerID string, req dto.CreateVacancyRequest) (*models.Order, error) {
	order := &models.Order{
		Type:             models.OrderTypeVacancy,
		CustomerID:       customerID,
		Title:            req.JobTitle,
		Description:      req.Description,
		Status:           models.OrderStatusNew,
		City:             req.City,
		SpecializationID: req.SpecializationID,
		JobTitle:         req.JobTitle,
		ExperienceLevel:  req.ExperienceLevel,
		EmploymentType:   req.EmploymentType,
		WorkFormat:       req.WorkFormat,
		SalaryFrom:       req.SalaryFrom,
		SalaryTo:         req.SalaryTo,
		SalaryPeriod:     req.SalaryPeriod,
		SalaryType:       req.SalaryType,
		Skills:           models.ToJSON(req.Skills),
		Languages:        models.ToJSON(req.Languages),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "vacancy created", "order_id", order.ID, "city", order.City)
	return order, nil
}

// Get возвращает карточку с публичными полями владельца.
// Счетчик просмотров инкрементится асинхронно и не блокирует ответ.
func (s *OrderService) Get(ctx context.Context, id string, orderType models.OrderType) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id, orderType)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.OrderResponse{Order: *order}
	if owner, err := s.userRepo.FindByID(ctx, order.CustomerID); err == nil {
		resp.Owner = &dto.OrderOwner{
			ID:          owner.ID,
			Name:        owner.Name,
			CompanyName: owner.CompanyName,
			Phone:       owner.Phone,
			Role:        owner.Role,
		}
	} else {
		logger.CtxWarn(ctx, "order owner lookup failed", "order_id", order.ID, "customer_id", order.CustomerID)
	}

	go func(orderID string) {
		if err := s.orderRepo.IncrementViews(context.Background(), orderID); err != nil {
			logger.WithError(err).Warn("views increment failed", "order_id", orderID)
		}
	}(order.ID)

	return resp, nil
}

// List - публичная лента активных объявлений.
func (s *OrderService) List(ctx context.Context, orderType models.OrderType, req dto.SearchOrdersRequest) (*dto.OrderListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	filter := repositories.OrderFilter{
		Type:             orderType,
		City:             req.City,
		SpecializationID: req.SpecializationID,
		MinBudget:        req.MinBudget,
		MaxBudget:        req.MaxBudget,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		Search:           req.Search,
		Statuses:         models.ActiveOrderStatuses,
		Page:             page,
		Limit:            limit,
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.OrderListResponse{
		Orders:  orders,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: total > int64(page*limit),
	}, nil
}

// CategoryStats - плитки категорий для витрины. Группировка в памяти:
// активных объявлений на город мало, отдельный GROUP BY не окупается.
func (s *OrderService) CategoryStats(ctx context.Context, orderType models.OrderType) (*dto.CategoryStatsResponse, error) {
	orders, err := s.orderRepo.ListActiveWithSpecialization(ctx, orderType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byCategory := make(map[string]*dto.CategoryStat)
	for _, order := range orders {
		amount := order.Budget
		if orderType == models.OrderTypeVacancy {
			amount = order.SalaryFrom
		}

		stat, ok := byCategory[order.SpecializationID]
		if !ok {
			spec := catalog.Resolve(order.SpecializationID)
			stat = &dto.CategoryStat{
				SpecializationID: order.SpecializationID,
				Name:             spec.NameRu,
				NameUz:           spec.NameUz,
				Icon:             spec.Icon,
				MinAmount:        amount,
				MaxAmount:        amount,
			}
			byCategory[order.SpecializationID] = stat
		}
		stat.Count++
		if amount > 0 && (stat.MinAmount == 0 || amount < stat.MinAmount) {
			stat.MinAmount = amount
		}
		if amount > stat.MaxAmount {
			stat.MaxAmount = amount
		}
	}

	stats := make([]dto.CategoryStat, 0, len(byCategory))
	total := 0
	for _, stat := range byCategory {
		stats = append(stats, *stat)
		total += stat.Count
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })

	return &dto.CategoryStatsResponse{Categories: stats, TotalOrders: total}, nil
}

// UpdateStatus - переход статуса владельцем. Сам переход выполняется
// одним условным UPDATE: конкурирующий запрос увидит 0 затронутых строк
// и получит конфликт, а не молча перезатрет статус.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, orderType models.OrderType, customerID string, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id, orderType)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if order.CustomerID != customerID {
		return nil, apperrors.ErrNotOrderOwner
	}

	from, ok := orderStatusTransitions[newStatus]
	if !ok {
		return nil, apperrors.ErrInvalidOrderTransition
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, from, newStatus)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !updated {
		return nil, apperrors.ErrInvalidOrderTransition
	}

	order.Status = newStatus
	logger.CtxInfo(ctx, "order status updated", "order_id", id, "status", newStatus)
	return order, nil
}

// RegisterPhoneView пишет факт просмотра телефона. Best-effort:
// сбой аналитики не должен ломать пользователю кнопку "позвонить".
func (s *OrderService) RegisterPhoneView(ctx context.Context, orderID, viewerID string) {
	view := &models.OrderPhoneView{
		OrderID:   orderID,
		ViewerID:  viewerID,
		CreatedAt: time.Now(),
	}
	if err := s.contactRepo.LogPhoneView(ctx, view); err != nil {
		logger.CtxWithError(ctx, "phone view log failed", err, "order_id", orderID)
	}
}

// RegisterPhoneCall фиксирует нажатие "позвонить". Тот же best-effort,
// что и просмотр телефона.
func (s *OrderService) RegisterPhoneCall(ctx context.Context, orderID, callerID string) {
	call := &models.OrderPhoneCall{
		OrderID:   orderID,
		CallerID:  callerID,
		CreatedAt: time.Now(),
	}
	if err := s.contactRepo.LogPhoneCall(ctx, call); err != nil {
		logger.CtxWithError(ctx, "phone call log failed", err, "order_id", orderID)
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
