package workers

import (
	"context"
	"time"

	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/repositories"
)

// OrderWorker - фоновые задачи маркетплейса: ежечасное закрытие
// просроченных daily-заказов и чистка протухших OTP-кодов.
// Сессии фоновой чистки не имеют: просроченные строки удаляются
// лениво при первом обращении с их токеном.
type OrderWorker struct {
	orderRepo repositories.OrderRepository
	otpRepo   repositories.OtpRepository
}

func NewOrderWorker(orderRepo repositories.OrderRepository, otpRepo repositories.OtpRepository) *OrderWorker {
	return &OrderWorker{orderRepo: orderRepo, otpRepo: otpRepo}
}

// Start запускает фоновые задачи.
func (w *OrderWorker) Start(ctx context.Context) {
	go w.cancelExpiredDaily(ctx)
	go w.cleanupOtpCodes(ctx)
}

// cancelExpiredDaily переводит daily-заказы с прошедшей датой работы
// в cancelled. Вакансии даты не имеют и живут до решения владельца.
func (w *OrderWorker) cancelExpiredDaily(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("order worker stopped")
			return
		case <-ticker.C:
			n, err := w.orderRepo.CancelExpiredDaily(ctx, time.Now())
			logger.WorkerLog("order_worker", "cancel_expired_daily", err)
			if err == nil && n > 0 {
				logger.Info("expired daily orders cancelled", "count", n)
			}
		}
	}
}

func (w *OrderWorker) cleanupOtpCodes(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.otpRepo.DeleteExpired(ctx, time.Now())
			logger.WorkerLog("order_worker", "cleanup_otp_codes", err)
			if err == nil && n > 0 {
				logger.Info("expired otp codes removed", "count", n)
			}
		}
	}
}
