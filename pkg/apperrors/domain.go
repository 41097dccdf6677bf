package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок маркетплейса.
Сообщения локализованы на русском - они уходят конечному пользователю как есть.
*/

// =========================================================================
// Фабричные функции (оборачивание ошибок репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Ресурс не найден", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus - фабрика для невалидных переходов статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Auth
// =========================================================================

// ErrInvalidCredentials - неверный email или пароль
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Неверный email или пароль",
	http.StatusUnauthorized,
)

// ErrSessionExpired - сессия отсутствует или истекла
var ErrSessionExpired = New(
	CodeSessionExpired,
	"auth",
	"Сессия истекла, войдите заново",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists - email уже используется
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Пользователь с таким email уже существует",
	http.StatusConflict,
)

// ErrPhoneAlreadyExists - телефон уже зарегистрирован
var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Пользователь с таким номером уже существует",
	http.StatusConflict,
)

// ErrInvalidOtp - код не совпал, истек или исчерпаны попытки
var ErrInvalidOtp = New(
	CodeValidationFailed,
	"auth",
	"Неверный или просроченный код подтверждения",
	http.StatusBadRequest,
)

// ErrOtpTooOften - повторный запрос кода раньше окна переотправки
var ErrOtpTooOften = New(
	CodeTooManyRequests,
	"auth",
	"Код уже отправлен, попробуйте через минуту",
	http.StatusTooManyRequests,
)

// ErrWeakPassword - пароль слишком слабый
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Пароль слишком короткий: минимум 6 символов",
	http.StatusBadRequest,
)

// =========================================================================
// Роли и права
// =========================================================================

// ErrCustomerOnly - операция доступна только заказчику
var ErrCustomerOnly = New(
	CodeForbidden,
	"business_logic",
	"Действие доступно только заказчикам",
	http.StatusForbidden,
)

// ErrWorkerOnly - операция доступна только исполнителю
var ErrWorkerOnly = New(
	CodeForbidden,
	"business_logic",
	"Откликаться могут только исполнители",
	http.StatusForbidden,
)

// ErrNotOrderOwner - вызывающий не владелец объявления
var ErrNotOrderOwner = New(
	CodeForbidden,
	"order",
	"Вы не являетесь владельцем этого объявления",
	http.StatusForbidden,
)

// =========================================================================
// Объявления и отклики
// =========================================================================

// ErrOrderNotFound - объявление не найдено (или тип не совпал)
var ErrOrderNotFound = New(
	CodeNotFound,
	"order",
	"Объявление не найдено",
	http.StatusNotFound,
)

// ErrOrderClosed - объявление больше не принимает отклики
var ErrOrderClosed = New(
	CodeConflict,
	"order",
	"Объявление уже закрыто и не принимает отклики",
	http.StatusConflict,
)

// ErrAlreadyApplied - повторный отклик на то же объявление
var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"Вы уже откликнулись на это объявление",
	http.StatusConflict,
)

// ErrApplicationNotFound - отклик не найден
var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Отклик не найден",
	http.StatusNotFound,
)

// ErrInvalidApplicationStatus - целевой статус отклика недопустим
var ErrInvalidApplicationStatus = New(
	CodeInvalidStatus,
	"application",
	"Недопустимый статус отклика",
	http.StatusBadRequest,
)

// ErrInvalidOrderTransition - недопустимый переход статуса объявления
var ErrInvalidOrderTransition = New(
	CodeInvalidStatus,
	"order",
	"Недопустимый переход статуса объявления",
	http.StatusConflict,
)

// =========================================================================
// Исполнители и отзывы
// =========================================================================

// ErrWorkerNotFound - профиль исполнителя не найден
var ErrWorkerNotFound = New(
	CodeNotFound,
	"worker",
	"Исполнитель не найден",
	http.StatusNotFound,
)

// ErrReviewAlreadyExists - отзыв по этому заказу уже оставлен
var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"Вы уже оставили отзыв по этому заказу",
	http.StatusConflict,
)

// ErrOrderNotCompleted - отзыв возможен только по завершенному заказу
var ErrOrderNotCompleted = New(
	CodeInvalidStatus,
	"review",
	"Отзыв можно оставить только после завершения заказа",
	http.StatusConflict,
)
