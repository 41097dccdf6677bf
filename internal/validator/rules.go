package validator

import (
	"log"
	"regexp"

	"ishtop_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var uzPhoneRe = regexp.MustCompile(`^\+998\d{9}$`)

// registerCustomRules регистрирует кастомные функции валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации - критическая ошибка конфигурации.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("uz-phone", validateUzPhone)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-worker-type", validateWorkerType)
	mustRegister("is-order-type", validateOrderType)
	mustRegister("is-application-status", validateApplicationStatus)
}

func validateUzPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	return uzPhoneRe.MatchString(value)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleCustomer, models.UserRoleWorker:
		return true
	}
	return false
}

func validateWorkerType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.WorkerType(value) {
	case models.WorkerTypeDaily, models.WorkerTypeProfessional, models.WorkerTypeJobSeeker:
		return true
	}
	return false
}

func validateOrderType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.OrderType(value) {
	case models.OrderTypeDaily, models.OrderTypeVacancy:
		return true
	}
	return false
}

// Целевые статусы, доступные владельцу объявления при решении по отклику.
func validateApplicationStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case string(models.ApplicantStatusAccepted), string(models.ApplicantStatusRejected):
		return true
	}
	return false
}
