package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет коды подтверждения по SMTP через gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPProvider(host string, port int, username, password, fromEmail, fromName string) *SMTPProvider {
	return &SMTPProvider{
		dialer:    gomail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (p *SMTPProvider) SendOTP(_ context.Context, to, code string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "IshTop: код подтверждения / tasdiqlash kodi")
	m.SetBody("text/plain", fmt.Sprintf(
		"Ваш код подтверждения: %s\nSizning tasdiqlash kodingiz: %s\n\nКод действует 5 минут. Kod 5 daqiqa amal qiladi.",
		code, code,
	))

	return p.dialer.DialAndSend(m)
}
