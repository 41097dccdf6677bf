package models

import "time"

// OtpCode - одноразовый код подтверждения номера телефона.
type OtpCode struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Code      string    `gorm:"not null" json:"-"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}

// EmailOtpCode - одноразовый код подтверждения email.
type EmailOtpCode struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"not null;index" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

func (EmailOtpCode) TableName() string {
	return "email_otp_codes"
}
