package dto

import "ishtop_backend/internal/models"

// --- Auth Requests ---

type EmailRegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required,max=100"`
	Role       string `json:"role" validate:"required,is-user-role"`
	WorkerType string `json:"worker_type" validate:"omitempty,is-worker-type"`
	City       string `json:"city" validate:"omitempty,max=100"`
}

type EmailLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendOtpRequest struct {
	Phone string `json:"phone" validate:"required,uz-phone"`
}

type VerifyOtpRequest struct {
	Phone string `json:"phone" validate:"required,uz-phone"`
	Code  string `json:"code" validate:"required,len=6"`

	// Заполняются только при первичной регистрации по телефону.
	Name       string `json:"name" validate:"omitempty,max=100"`
	Role       string `json:"role" validate:"omitempty,is-user-role"`
	WorkerType string `json:"worker_type" validate:"omitempty,is-worker-type"`
	City       string `json:"city" validate:"omitempty,max=100"`
}

type SendEmailOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`

	// Заполняются только при первичной регистрации по email.
	Name       string `json:"name" validate:"omitempty,max=100"`
	Role       string `json:"role" validate:"omitempty,is-user-role"`
	WorkerType string `json:"worker_type" validate:"omitempty,is-worker-type"`
	City       string `json:"city" validate:"omitempty,max=100"`
}

// --- Auth Responses ---

type AuthResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type SendOtpResponse struct {
	Success   bool `json:"success"`
	IsNewUser bool `json:"isNewUser"`
}

type VerifyOtpResponse struct {
	Success   bool   `json:"success"`
	IsNewUser bool   `json:"isNewUser"`
	UserID    string `json:"userId,omitempty"`
}
