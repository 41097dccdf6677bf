package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ishtop_backend/internal/models"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	service  *OrderService
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	contacts *fakeContactLogRepo
}

func newOrderFixture() *orderFixture {
	orders := newFakeOrderRepo()
	users := newFakeUserRepo()
	contacts := newFakeContactLogRepo()
	return &orderFixture{
		service:  NewOrderService(orders, users, contacts),
		orders:   orders,
		users:    users,
		contacts: contacts,
	}
}

// TestCreateDaily - создание заказа с дефолтом workers_needed.
func TestCreateDaily(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
		Title:       "Копка траншеи",
		Description: "Траншея 20 метров под кабель",
		City:        "Ташкент",
		Budget:      300000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderTypeDaily, order.Type)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, 1, order.WorkersNeeded, "workers_needed по умолчанию 1")
	assert.Zero(t, order.ApplicantsCount)
}

// TestCreateVacancy - поля вакансии уходят в jsonb, заголовок дублируется.
func TestCreateVacancy(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	vacancy, err := f.service.CreateVacancy(ctx, "employer-1", dto.CreateVacancyRequest{
		JobTitle:         "Продавец-консультант",
		Description:      "Работа в торговом центре",
		SpecializationID: "sales",
		ExperienceLevel:  "junior",
		City:             "Ташкент",
		SalaryFrom:       3000000,
		SalaryTo:         4500000,
		Skills:           []string{"продажи", "касса"},
		Languages:        []string{"русский", "узбекский"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderTypeVacancy, vacancy.Type)
	assert.Equal(t, "Продавец-консультант", vacancy.Title)
	assert.Equal(t, []string{"продажи", "касса"}, models.StringList(vacancy.Skills))
}

// TestList_Pagination - hasMore считается от total и позиции страницы.
func TestList_Pagination(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
			Title:       "Заказ",
			Description: "Описание",
			City:        "Ташкент",
		})
		require.NoError(t, err)
	}

	page1, err := f.service.List(ctx, models.OrderTypeDaily, dto.SearchOrdersRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Orders, 10)
	assert.Equal(t, int64(25), page1.Total)
	assert.True(t, page1.HasMore)

	page3, err := f.service.List(ctx, models.OrderTypeDaily, dto.SearchOrdersRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Orders, 5)
	assert.False(t, page3.HasMore, "последняя страница")

	// Страница за пределами выдачи - пустой список, не ошибка
	page9, err := f.service.List(ctx, models.OrderTypeDaily, dto.SearchOrdersRequest{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page9.Orders)
	assert.Equal(t, int64(25), page9.Total)
}

// TestList_EmptyPageSerialization - пустая страница сериализуется как
// [], а не null: фронтенд итерируется по массиву без доппроверок.
func TestList_EmptyPageSerialization(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	resp, err := f.service.List(ctx, models.OrderTypeDaily, dto.SearchOrdersRequest{Page: 9, Limit: 10})
	require.NoError(t, err)
	require.NotNil(t, resp.Orders)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"orders":[]`)
}

// TestList_HidesClosedOrders - публичная лента видит только активные статусы.
func TestList_HidesClosedOrders(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
		Title:       "Заказ",
		Description: "Описание",
		City:        "Бухара",
	})
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, order.ID, []models.OrderStatus{models.OrderStatusNew}, models.OrderStatusCancelled)
	require.NoError(t, err)

	resp, err := f.service.List(ctx, models.OrderTypeDaily, dto.SearchOrdersRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Orders)
}

// TestGet_OwnerJoin - карточка отдает публичные поля владельца.
func TestGet_OwnerJoin(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	customer := &models.User{Name: "Ойбек", Phone: "+998911112233", Role: models.UserRoleCustomer}
	require.NoError(t, f.users.Create(ctx, customer))

	order, err := f.service.CreateDaily(ctx, customer.ID, dto.CreateOrderRequest{
		Title:       "Покраска забора",
		Description: "Забор 40 метров",
		City:        "Ташкент",
	})
	require.NoError(t, err)

	resp, err := f.service.Get(ctx, order.ID, models.OrderTypeDaily)
	require.NoError(t, err)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, "Ойбек", resp.Owner.Name)
	assert.Equal(t, "+998911112233", resp.Owner.Phone)

	// Запрос daily-ручкой по id вакансии - 404
	_, err = f.service.Get(ctx, order.ID, models.OrderTypeVacancy)
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

// TestUpdateStatus_Transitions - таблица переходов и проверка владельца.
func TestUpdateStatus_Transitions(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
		Title:       "Заказ",
		Description: "Описание",
		City:        "Ташкент",
	})
	require.NoError(t, err)

	// Чужой пользователь - 403
	_, err = f.service.UpdateStatus(ctx, order.ID, models.OrderTypeDaily, "stranger", models.OrderStatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrNotOrderOwner)

	// completed из new - недопустимо
	_, err = f.service.UpdateStatus(ctx, order.ID, models.OrderTypeDaily, "customer-1", models.OrderStatusCompleted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderTransition)

	// new -> in_progress -> completed
	updated, err := f.service.UpdateStatus(ctx, order.ID, models.OrderTypeDaily, "customer-1", models.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, updated.Status)

	updated, err = f.service.UpdateStatus(ctx, order.ID, models.OrderTypeDaily, "customer-1", models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	// Терминальный статус не покидается
	_, err = f.service.UpdateStatus(ctx, order.ID, models.OrderTypeDaily, "customer-1", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderTransition)
}

// TestCategoryStats - группировка по специализации с min/max бюджетом.
func TestCategoryStats(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	for _, tc := range []struct {
		spec   string
		budget float64
	}{
		{"loading", 200000},
		{"loading", 350000},
		{"cleaning", 150000},
	} {
		_, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
			Title:            "Заказ",
			Description:      "Описание",
			City:             "Ташкент",
			SpecializationID: tc.spec,
			Budget:           tc.budget,
		})
		require.NoError(t, err)
	}

	resp, err := f.service.CategoryStats(ctx, models.OrderTypeDaily)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalOrders)
	require.Len(t, resp.Categories, 2)

	// Сортировка по числу объявлений: loading первым
	loading := resp.Categories[0]
	assert.Equal(t, "loading", loading.SpecializationID)
	assert.Equal(t, 2, loading.Count)
	assert.Equal(t, 200000.0, loading.MinAmount)
	assert.Equal(t, 350000.0, loading.MaxAmount)
	assert.NotEmpty(t, loading.NameUz, "двуязычное имя из справочника")
}

// TestRegisterPhoneView - аналитика контактов пишется, ошибок наружу нет.
func TestRegisterPhoneView(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	f.service.RegisterPhoneView(ctx, "order-1", "viewer-1")
	f.service.RegisterPhoneView(ctx, "order-1", "") // анонимный просмотр

	assert.Len(t, f.contacts.views, 2)
}

// TestRegisterPhoneCall - нажатие "позвонить" логируется той же схемой.
func TestRegisterPhoneCall(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	f.service.RegisterPhoneCall(ctx, "order-1", "caller-1")
	f.service.RegisterPhoneCall(ctx, "order-1", "") // анонимный звонок

	assert.Len(t, f.contacts.calls, 2)
}

// TestCancelExpiredDaily - фоновый переход просроченных daily в cancelled.
func TestCancelExpiredDaily(t *testing.T) {
	t.Parallel()
	f := newOrderFixture()
	ctx := context.Background()

	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	expired, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
		Title: "Вчерашний", Description: "x", City: "Ташкент", ServiceDate: &yesterday,
	})
	require.NoError(t, err)
	actual, err := f.service.CreateDaily(ctx, "customer-1", dto.CreateOrderRequest{
		Title: "Завтрашний", Description: "x", City: "Ташкент", ServiceDate: &tomorrow,
	})
	require.NoError(t, err)

	n, err := f.orders.CancelExpiredDaily(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, models.OrderStatusCancelled, f.orders.get(expired.ID).Status)
	assert.Equal(t, models.OrderStatusNew, f.orders.get(actual.ID).Status)
}
