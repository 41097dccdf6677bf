package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// EskizProvider - клиент SMS-шлюза Eskiz (notify.eskiz.uz).
// Токен живет ограниченное время; при 401 логинимся заново.
type EskizProvider struct {
	baseURL  string
	email    string
	password string
	from     string
	client   *http.Client

	mu    sync.Mutex
	token string
}

func NewEskizProvider(baseURL, email, password, from string) *EskizProvider {
	if baseURL == "" {
		baseURL = "https://notify.eskiz.uz/api"
	}
	return &EskizProvider{
		baseURL:  baseURL,
		email:    email,
		password: password,
		from:     from,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *EskizProvider) SendOTP(ctx context.Context, phone, code string) error {
	message := fmt.Sprintf("IshTop: kod / код: %s", code)

	err := p.send(ctx, phone, message)
	if err == errUnauthorized {
		if err = p.login(ctx); err != nil {
			return err
		}
		err = p.send(ctx, phone, message)
	}
	return err
}

var errUnauthorized = fmt.Errorf("eskiz: unauthorized")

func (p *EskizProvider) send(ctx context.Context, phone, message string) error {
	p.mu.Lock()
	token := p.token
	p.mu.Unlock()

	if token == "" {
		return errUnauthorized
	}

	payload, err := json.Marshal(map[string]string{
		"mobile_phone": phone,
		"message":      message,
		"from":         p.from,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/message/sms/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errUnauthorized
	case resp.StatusCode >= 400:
		return fmt.Errorf("eskiz: send failed with status %d", resp.StatusCode)
	}
	return nil
}

func (p *EskizProvider) login(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"email":    p.email,
		"password": p.password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("eskiz: login failed with status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	p.mu.Lock()
	p.token = body.Data.Token
	p.mu.Unlock()
	return nil
}
