package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"ishtop_backend/internal/config"
	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/models"
	"ishtop_backend/internal/notify"
	"ishtop_backend/internal/repositories"
	"ishtop_backend/internal/services/dto"
	"ishtop_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	otpRepo     repositories.OtpRepository
	sms         notify.SMSProvider
	email       notify.EmailProvider

	sessionTTL     time.Duration
	otpTTL         time.Duration
	otpResend      time.Duration
	otpMaxAttempts int
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	otpRepo repositories.OtpRepository,
	sms notify.SMSProvider,
	email notify.EmailProvider,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		otpRepo:        otpRepo,
		sms:            sms,
		email:          email,
		sessionTTL:     time.Duration(cfg.Session.TTLDays) * 24 * time.Hour,
		otpTTL:         time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
		otpResend:      time.Duration(cfg.OTP.ResendSeconds) * time.Second,
		otpMaxAttempts: cfg.OTP.MaxAttempts,
	}
}

// SessionTTL нужен хендлеру для выставления max-age cookie.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// RegisterEmail создает пользователя по email+паролю и открывает сессию.
func (s *AuthService) RegisterEmail(ctx context.Context, req dto.EmailRegisterRequest) (*models.User, *models.Session, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	} else if err != repositories.ErrUserNotFound {
		return nil, nil, apperrors.InternalError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.UserRole(req.Role),
		WorkerType:   models.WorkerType(req.WorkerType),
		City:         req.City,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil, nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, nil, apperrors.InternalError(err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// LoginEmail - вход по email+паролю.
// Неизвестный email дает 404, неверный пароль - 401 (см. контракт API).
func (s *AuthService) LoginEmail(ctx context.Context, req dto.EmailLoginRequest) (*models.User, *models.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, nil, apperrors.NewNotFoundError("auth", "Пользователь с таким email не найден")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// SendOtp генерирует и отправляет код на телефон.
// Повторный запрос внутри окна переотправки дает 429.
func (s *AuthService) SendOtp(ctx context.Context, phone string) (bool, error) {
	isNewUser := false
	if _, err := s.userRepo.FindByPhone(ctx, phone); err != nil {
		if err != repositories.ErrUserNotFound {
			return false, apperrors.InternalError(err)
		}
		isNewUser = true
	}

	now := time.Now()
	if active, err := s.otpRepo.FindActiveByPhone(ctx, phone, now); err == nil {
		if now.Sub(active.CreatedAt) < s.otpResend {
			return false, apperrors.ErrOtpTooOften
		}
	} else if err != repositories.ErrOtpNotFound {
		return false, apperrors.InternalError(err)
	}

	code := &models.OtpCode{
		Phone:     phone,
		Code:      newOtpCode(),
		ExpiresAt: now.Add(s.otpTTL),
	}
	if err := s.otpRepo.CreatePhone(ctx, code); err != nil {
		return false, apperrors.InternalError(err)
	}

	if err := s.sms.SendOTP(ctx, phone, code.Code); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeExternalServiceError,
			"sms", "Не удалось отправить SMS, попробуйте позже", 500)
	}

	return isNewUser, nil
}

// VerifyOtp проверяет код; для нового номера создает пользователя.
func (s *AuthService) VerifyOtp(ctx context.Context, req dto.VerifyOtpRequest) (*models.User, *models.Session, bool, error) {
	now := time.Now()

	code, err := s.otpRepo.FindActiveByPhone(ctx, req.Phone, now)
	if err != nil {
		if err == repositories.ErrOtpNotFound {
			return nil, nil, false, apperrors.ErrInvalidOtp
		}
		return nil, nil, false, apperrors.InternalError(err)
	}

	if code.Attempts >= s.otpMaxAttempts {
		return nil, nil, false, apperrors.ErrInvalidOtp
	}
	if code.Code != req.Code {
		if err := s.otpRepo.IncrementPhoneAttempts(ctx, code.ID); err != nil {
			logger.CtxWithError(ctx, "failed to bump otp attempts", err, "phone", req.Phone)
		}
		return nil, nil, false, apperrors.ErrInvalidOtp
	}

	if err := s.otpRepo.MarkPhoneVerified(ctx, code.ID); err != nil {
		return nil, nil, false, apperrors.InternalError(err)
	}

	isNewUser := false
	user, err := s.userRepo.FindByPhone(ctx, req.Phone)
	if err == repositories.ErrUserNotFound {
		isNewUser = true
		role := models.UserRole(req.Role)
		if role == "" {
			role = models.UserRoleWorker
		}
		user = &models.User{
			Phone:      req.Phone,
			Name:       req.Name,
			Role:       role,
			WorkerType: models.WorkerType(req.WorkerType),
			City:       req.City,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if err == repositories.ErrUserAlreadyExists {
				return nil, nil, false, apperrors.ErrPhoneAlreadyExists
			}
			return nil, nil, false, apperrors.InternalError(err)
		}
	} else if err != nil {
		return nil, nil, false, apperrors.InternalError(err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, false, err
	}
	return user, session, isNewUser, nil
}

// SendEmailOtp - то же окно переотправки и TTL, что у телефонного кода,
// но доставка через почтовый провайдер.
func (s *AuthService) SendEmailOtp(ctx context.Context, email string) (bool, error) {
	isNewUser := false
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if err != repositories.ErrUserNotFound {
			return false, apperrors.InternalError(err)
		}
		isNewUser = true
	}

	now := time.Now()
	if active, err := s.otpRepo.FindActiveByEmail(ctx, email, now); err == nil {
		if now.Sub(active.CreatedAt) < s.otpResend {
			return false, apperrors.ErrOtpTooOften
		}
	} else if err != repositories.ErrOtpNotFound {
		return false, apperrors.InternalError(err)
	}

	code := &models.EmailOtpCode{
		Email:     email,
		Code:      newOtpCode(),
		ExpiresAt: now.Add(s.otpTTL),
	}
	if err := s.otpRepo.CreateEmail(ctx, code); err != nil {
		return false, apperrors.InternalError(err)
	}

	if err := s.email.SendOTP(ctx, email, code.Code); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeExternalServiceError,
			"email", "Не удалось отправить письмо, попробуйте позже", 500)
	}

	return isNewUser, nil
}

// VerifyEmailOtp проверяет код из письма; для нового email создает
// пользователя без пароля. Вход по паролю такой учетке недоступен,
// пока пароль не задан.
func (s *AuthService) VerifyEmailOtp(ctx context.Context, req dto.VerifyEmailOtpRequest) (*models.User, *models.Session, bool, error) {
	now := time.Now()

	code, err := s.otpRepo.FindActiveByEmail(ctx, req.Email, now)
	if err != nil {
		if err == repositories.ErrOtpNotFound {
			return nil, nil, false, apperrors.ErrInvalidOtp
		}
		return nil, nil, false, apperrors.InternalError(err)
	}

	if code.Attempts >= s.otpMaxAttempts {
		return nil, nil, false, apperrors.ErrInvalidOtp
	}
	if code.Code != req.Code {
		if err := s.otpRepo.IncrementEmailAttempts(ctx, code.ID); err != nil {
			logger.CtxWithError(ctx, "failed to bump email otp attempts", err, "email", req.Email)
		}
		return nil, nil, false, apperrors.ErrInvalidOtp
	}

	if err := s.otpRepo.MarkEmailVerified(ctx, code.ID); err != nil {
		return nil, nil, false, apperrors.InternalError(err)
	}

	isNewUser := false
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == repositories.ErrUserNotFound {
		isNewUser = true
		role := models.UserRole(req.Role)
		if role == "" {
			role = models.UserRoleWorker
		}
		user = &models.User{
			Email:      req.Email,
			Name:       req.Name,
			Role:       role,
			WorkerType: models.WorkerType(req.WorkerType),
			City:       req.City,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if err == repositories.ErrUserAlreadyExists {
				return nil, nil, false, apperrors.ErrEmailAlreadyExists
			}
			return nil, nil, false, apperrors.InternalError(err)
		}
	} else if err != nil {
		return nil, nil, false, apperrors.InternalError(err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, false, err
	}
	return user, session, isNewUser, nil
}

// ResolveSession - Session Resolver: токен cookie -> пользователь.
// Просроченная или отсутствующая сессия дает ErrSessionExpired; на
// read-путях вызывающий трактует это как анонимный запрос, не как сбой.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if err == repositories.ErrSessionNotFound {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.InternalError(err)
	}

	// Роль и worker_type берутся отдельным запросом, без join.
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthService) openSession(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{
		Token:     newSessionToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return session, nil
}

// newSessionToken - 32 случайных байта в hex.
func newSessionToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// newOtpCode - 6-значный код с криптостойкой случайностью.
func newOtpCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(0)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
