// Package notify отправляет одноразовые коды подтверждения.
// Провайдеры выбираются один раз при старте процесса и внедряются в
// auth-сервис как зависимости; никаких проверок окружения по месту вызова.
package notify

import "context"

// SMSProvider доставляет код подтверждения на номер телефона.
type SMSProvider interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// EmailProvider доставляет код подтверждения на email.
type EmailProvider interface {
	SendOTP(ctx context.Context, to, code string) error
}
