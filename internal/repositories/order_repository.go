package repositories

import (
	"context"
	"errors"
	"time"

	"ishtop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderFilter - критерии публичной выдачи объявлений.
// Диапазоны бюджета применяются к daily, диапазоны зарплаты - к vacancy.
type OrderFilter struct {
	Type             models.OrderType
	City             string
	SpecializationID string
	MinBudget        *float64
	MaxBudget        *float64
	MinSalary        *float64
	MaxSalary        *float64
	Search           string
	Statuses         []models.OrderStatus
	Page             int
	Limit            int
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string, orderType models.OrderType) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	ListActiveWithSpecialization(ctx context.Context, orderType models.OrderType) ([]models.Order, error)

	IncrementViews(ctx context.Context, id string) error
	RegisterApplication(ctx context.Context, id string) error
	DecrementPending(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, from []models.OrderStatus, to models.OrderStatus) (bool, error)
	CancelExpiredDaily(ctx context.Context, before time.Time) (int64, error)
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID ищет объявление; непустой orderType дополнительно сужает поиск,
// так что запрос вакансии через daily-эндпоинт дает "не найдено".
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string, orderType models.OrderType) (*models.Order, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if orderType != "" {
		query = query.Where("type = ?", orderType)
	}

	var order models.Order
	err := query.First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.SpecializationID != "" {
		query = query.Where("specialization_id = ?", filter.SpecializationID)
	}
	if filter.MinBudget != nil {
		query = query.Where("budget >= ?", *filter.MinBudget)
	}
	if filter.MaxBudget != nil {
		query = query.Where("budget <= ?", *filter.MaxBudget)
	}
	if filter.MinSalary != nil {
		query = query.Where("salary_from >= ?", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		query = query.Where("COALESCE(NULLIF(salary_to, 0), salary_from) <= ?", *filter.MaxSalary)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR job_title ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Find на пустой выборке оставляет nil; инициализируем, чтобы
	// пустая страница сериализовалась как [], а не null.
	orders := []models.Order{}
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListActiveWithSpecialization отдает сырье для категорийных плиток.
// Группировка по специализации идет в сервисе: различных специализаций
// немного, объем строк небольшой.
func (r *OrderRepositoryImpl) ListActiveWithSpecialization(ctx context.Context, orderType models.OrderType) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("type = ?", orderType).
		Where("status IN ?", models.ActiveOrderStatuses).
		Where("specialization_id <> ''").
		Find(&orders).Error
	return orders, err
}

// IncrementViews - атомарный инкремент счетчика просмотров.
func (r *OrderRepositoryImpl) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// RegisterApplication фиксирует новый отклик одним UPDATE:
// оба счетчика растут атомарно, статус new переходит в response_received.
// Read-modify-write здесь недопустим - два конкурентных отклика обязаны
// дать +2, а не +1.
func (r *OrderRepositoryImpl) RegisterApplication(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE orders SET
			applicants_count = applicants_count + 1,
			pending_applicants_count = pending_applicants_count + 1,
			status = CASE WHEN status = 'new' THEN 'response_received' ELSE status END,
			updated_at = now()
		WHERE id = ?
	`, id).Error
}

// DecrementPending уменьшает счетчик ожидающих с полом в ноль.
func (r *OrderRepositoryImpl) DecrementPending(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("pending_applicants_count", gorm.Expr("GREATEST(pending_applicants_count - 1, 0)")).Error
}

// UpdateStatus переводит объявление в новый статус, только если текущий
// входит в from. Возвращает false, если переход не состоялся.
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id string, from []models.OrderStatus, to models.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CancelExpiredDaily закрывает просроченные daily-объявления, которые так
// и не были взяты в работу. Вызывается фоновым воркером.
func (r *OrderRepositoryImpl) CancelExpiredDaily(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE orders SET status = 'cancelled', updated_at = now()
		WHERE type = 'daily'
		  AND status IN ('new', 'response_received')
		  AND service_date IS NOT NULL
		  AND service_date < ?
	`, before)
	return result.RowsAffected, result.Error
}
