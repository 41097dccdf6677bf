package models

import "time"

// Session - строка сессии, на которую указывает cookie session_token.
// Строка с expires_at в прошлом считается отсутствующей и удаляется
// лениво при обращении (фонового sweeper-а нет).
type Session struct {
	Token     string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

func (Session) TableName() string {
	return "user_sessions"
}
