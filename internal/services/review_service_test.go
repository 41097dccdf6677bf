package services

import (
	"context"
	"testing"

	"ishtop_backend/internal/models"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	service    *ReviewService
	reviews    *fakeReviewRepo
	orders     *fakeOrderRepo
	applicants *fakeApplicantRepo
}

func newReviewFixture() *reviewFixture {
	reviews := newFakeReviewRepo()
	orders := newFakeOrderRepo()
	applicants := newFakeApplicantRepo()
	return &reviewFixture{
		service:    NewReviewService(reviews, orders, applicants),
		reviews:    reviews,
		orders:     orders,
		applicants: applicants,
	}
}

// completedOrder готовит завершённый заказ с откликом исполнителя.
func (f *reviewFixture) completedOrder(t *testing.T, customerID, workerID string) *models.Order {
	t.Helper()
	ctx := context.Background()
	order := &models.Order{
		Type:       models.OrderTypeDaily,
		CustomerID: customerID,
		Title:      "Сборка мебели",
		Status:     models.OrderStatusCompleted,
	}
	require.NoError(t, f.orders.Create(ctx, order))
	require.NoError(t, f.applicants.Create(ctx, &models.Applicant{
		OrderID: order.ID, WorkerID: workerID, Status: models.ApplicantStatusAccepted,
	}))
	return order
}

// TestReviewCreate_Guards - цепочка проверок перед созданием отзыва.
func TestReviewCreate_Guards(t *testing.T) {
	t.Parallel()
	f := newReviewFixture()
	ctx := context.Background()
	customer := &models.User{BaseModel: models.BaseModel{ID: "customer-1"}, Name: "Ойбек", Role: models.UserRoleCustomer}

	// Несуществующий заказ - 404
	_, err := f.service.Create(ctx, customer, dto.CreateReviewRequest{
		OrderID: "ghost", WorkerID: "worker-1", Rating: 5,
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)

	// Чужой заказ - 403
	foreign := f.completedOrder(t, "someone-else", "worker-1")
	_, err = f.service.Create(ctx, customer, dto.CreateReviewRequest{
		OrderID: foreign.ID, WorkerID: "worker-1", Rating: 5,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotOrderOwner)

	// Незавершенный заказ - 409
	open := &models.Order{Type: models.OrderTypeDaily, CustomerID: customer.ID, Status: models.OrderStatusInProgress}
	require.NoError(t, f.orders.Create(ctx, open))
	_, err = f.service.Create(ctx, customer, dto.CreateReviewRequest{
		OrderID: open.ID, WorkerID: "worker-1", Rating: 5,
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotCompleted)

	// Исполнитель без отклика на этот заказ - 404
	own := f.completedOrder(t, customer.ID, "worker-1")
	_, err = f.service.Create(ctx, customer, dto.CreateReviewRequest{
		OrderID: own.ID, WorkerID: "never-applied", Rating: 5,
	})
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

// TestReviewCreate_SnapshotAndDedup - снимок полей и один отзыв на заказ.
func TestReviewCreate_SnapshotAndDedup(t *testing.T) {
	t.Parallel()
	f := newReviewFixture()
	ctx := context.Background()
	customer := &models.User{BaseModel: models.BaseModel{ID: "customer-1"}, Name: "Ойбек", Role: models.UserRoleCustomer}
	order := f.completedOrder(t, customer.ID, "worker-1")

	review, err := f.service.Create(ctx, customer, dto.CreateReviewRequest{
		OrderID:  order.ID,
		WorkerID: "worker-1",
		Rating:   5,
		Comment:  "Отличная работа",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ойбек", review.CustomerName, "имя заказчика снимается в отзыв")
	assert.Equal(t, "Сборка мебели", review.OrderTitle, "заголовок заказа снимается в отзыв")

	// Повторный отзыв по тому же заказу - 409
	_, err = f.service.Create(ctx, customer, dto.CreateReviewRequest{
		OrderID: order.ID, WorkerID: "worker-1", Rating: 4,
	})
	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyExists)
}

// TestReviewList_Pagination - выдача отзывов исполнителя.
func TestReviewList_Pagination(t *testing.T) {
	t.Parallel()
	f := newReviewFixture()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, f.reviews.Create(ctx, &models.Review{
			OrderID:    "order-" + string(rune('a'+i)),
			CustomerID: "customer-" + string(rune('a'+i)),
			WorkerID:   "worker-1",
			Rating:     4,
		}))
	}

	resp, err := f.service.ListForWorker(ctx, "worker-1", 1, 5)
	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 5)
	assert.Equal(t, int64(7), resp.Total)
	assert.True(t, resp.HasMore)

	resp, err = f.service.ListForWorker(ctx, "worker-1", 2, 5)
	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 2)
	assert.False(t, resp.HasMore)
}
