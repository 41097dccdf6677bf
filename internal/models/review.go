package models

import "time"

// Review - отзыв заказчика об исполнителе по завершенному заказу.
// Один отзыв на пару (order, customer). Агрегат нигде не хранится:
// рейтинг исполнителя пересчитывается при каждом чтении профиля.
type Review struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_order_customer" json:"order_id"`
	CustomerID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_order_customer" json:"customer_id"`
	WorkerID     string    `gorm:"type:uuid;not null;index" json:"worker_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	OrderTitle   string    `json:"order_title"`
	CreatedAt    time.Time `gorm:"default:now()" json:"created_at"`
}
