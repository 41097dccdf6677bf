package models

import (
	"gorm.io/datatypes"
)

// User - единая учетная запись заказчика или исполнителя.
// Рейтинг здесь не хранится - он считается на лету из отзывов.
// Аккаунты не удаляются физически.
type User struct {
	BaseModel
	// Телефон уникален только когда заполнен: email-регистрация
	// оставляет его пустым, и таких учеток может быть сколько угодно.
	Phone        string     `gorm:"uniqueIndex:idx_users_phone,where:phone <> ''" json:"phone"`
	Email        string     `gorm:"index" json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	WorkerType   WorkerType `gorm:"type:varchar(30)" json:"worker_type,omitempty"`
	Name         string     `json:"name"`
	CompanyName  string     `json:"company_name,omitempty"`
	City         string     `gorm:"index" json:"city"`
	About        string     `json:"about,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Lang         string     `gorm:"type:varchar(2);default:'ru'" json:"lang"`

	// Полуструктурированные поля. Исторически писались то массивом,
	// то JSON-строкой, поэтому читать их нужно через models.StringList
	// и models.ObjectList.
	Skills          datatypes.JSON `gorm:"type:jsonb" json:"skills,omitempty"`
	Languages       datatypes.JSON `gorm:"type:jsonb" json:"languages,omitempty"`
	Specializations datatypes.JSON `gorm:"type:jsonb" json:"specializations,omitempty"`
	Education       datatypes.JSON `gorm:"type:jsonb" json:"education,omitempty"`
	WorkExperience  datatypes.JSON `gorm:"type:jsonb" json:"work_experience,omitempty"`
	WorkPhotos      datatypes.JSON `gorm:"type:jsonb" json:"work_photos,omitempty"`
}
