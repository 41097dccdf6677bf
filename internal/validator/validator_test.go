package validator

import (
	"strings"
	"testing"

	"ishtop_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_UzPhone(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(dto.SendOtpRequest{Phone: "+998901234567"}))

	for _, phone := range []string{
		"998901234567",    // без плюса
		"+99890123456",    // короткий
		"+9989012345678",  // длинный
		"+79091234567",    // не Узбекистан
		"+998 90 1234567", // пробелы
	} {
		err := v.Validate(dto.SendOtpRequest{Phone: phone})
		require.Error(t, err, "телефон %q должен быть отвергнут", phone)
		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, vErr.Errors, "phone")
	}
}

func TestValidate_CreateOrderLimits(t *testing.T) {
	t.Parallel()
	v := New()

	valid := dto.CreateOrderRequest{
		Title:       "Разгрузка фуры",
		Description: "Нужно разгрузить 10 тонн",
		City:        "Ташкент",
	}
	assert.NoError(t, v.Validate(valid))

	long := valid
	long.Title = strings.Repeat("x", 71)
	err := v.Validate(long)
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "title", "лимит заголовка 70 символов")

	missing := valid
	missing.Description = ""
	err = v.Validate(missing)
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "description")
}

func TestValidate_CreateVacancyRequired(t *testing.T) {
	t.Parallel()
	v := New()

	valid := dto.CreateVacancyRequest{
		JobTitle:         "Продавец",
		Description:      "Работа в магазине",
		SpecializationID: "sales",
		ExperienceLevel:  "junior",
		City:             "Ташкент",
		Skills:           []string{"продажи"},
		Languages:        []string{"узбекский"},
	}
	assert.NoError(t, v.Validate(valid))

	// Пустые skills - отказ (min=1)
	noSkills := valid
	noSkills.Skills = []string{}
	err := v.Validate(noSkills)
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "skills")

	// salary_to меньше salary_from - отказ
	badSalary := valid
	badSalary.SalaryFrom = 5000000
	badSalary.SalaryTo = 3000000
	err = v.Validate(badSalary)
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "salary_to")
}

func TestValidate_Roles(t *testing.T) {
	t.Parallel()
	v := New()

	req := dto.EmailRegisterRequest{
		Email:    "a@b.uz",
		Password: "secret123",
		Name:     "Имя",
		Role:     "customer",
	}
	assert.NoError(t, v.Validate(req))

	req.Role = "admin"
	err := v.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "role")
}

func TestValidate_ApplicationStatus(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(dto.UpdateApplicationStatusRequest{Status: "accepted"}))
	assert.NoError(t, v.Validate(dto.UpdateApplicationStatusRequest{Status: "rejected"}))

	// Владелец не может выставить отклику произвольный статус
	for _, status := range []string{"pending", "completed", "cancelled", "garbage"} {
		err := v.Validate(dto.UpdateApplicationStatusRequest{Status: status})
		assert.Error(t, err, "статус %q должен быть отвергнут", status)
	}
}
