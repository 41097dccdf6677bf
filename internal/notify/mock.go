package notify

import (
	"context"

	"ishtop_backend/internal/logger"
)

// Дев-провайдеры: код не отправляется, а пишется в лог.
// Ставятся по умолчанию, пока в конфиге не указан реальный провайдер.

type MockSMSProvider struct{}

func NewMockSMSProvider() *MockSMSProvider {
	return &MockSMSProvider{}
}

func (p *MockSMSProvider) SendOTP(ctx context.Context, phone, code string) error {
	logger.CtxInfo(ctx, "[MOCK SMS] otp code", "phone", phone, "code", code)
	return nil
}

type MockEmailProvider struct{}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendOTP(ctx context.Context, to, code string) error {
	logger.CtxInfo(ctx, "[MOCK EMAIL] otp code", "email", to, "code", code)
	return nil
}
