// planning-auto/models/user.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Роли пользователей. Набор закрытый: ветвление по ролям идёт только по этим константам.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// Maneuvers - чек-лист из пяти обязательных манёвров ученика.
type Maneuvers struct {
	Parking        bool `json:"parking"`
	Highway        bool `json:"highway"`
	City           bool `json:"city"`
	ReverseParking bool `json:"reverseParking"`
	Emergency      bool `json:"emergency"`
}

// Progress - учебный прогресс ученика. Хранится в колонке jsonb целиком,
// как единый документ: структура меняется чаще, чем остальная схема.
type Progress struct {
	DrivingHours int       `json:"drivingHours"`
	TargetHours  int       `json:"targetHours"`
	CodeScore    int       `json:"codeScore"`
	Maneuvers    Maneuvers `json:"maneuvers"`
}

const (
	// CodeScoreMax - максимум баллов на экзамене по теории.
	CodeScoreMax = 40
	// CodeScorePass - порог готовности к экзамену по теории.
	CodeScorePass = 35
	// DefaultTargetHours - целевое количество часов вождения по умолчанию.
	DefaultTargetHours = 20
)

// DrivingPercent возвращает процент пройденных часов вождения (0-100).
func (p Progress) DrivingPercent() int {
	if p.TargetHours <= 0 {
		return 0
	}
	percent := p.DrivingHours * 100 / p.TargetHours
	if percent > 100 {
		percent = 100
	}
	return percent
}

// CodePercent возвращает процент набранных баллов по теории (0-100).
func (p Progress) CodePercent() int {
	percent := p.CodeScore * 100 / CodeScoreMax
	if percent > 100 {
		percent = 100
	}
	return percent
}

// CodeReady сообщает, готов ли ученик к экзамену по теории.
func (p Progress) CodeReady() bool {
	return p.CodeScore >= CodeScorePass
}

// User представляет пользователя системы: администратора, инструктора или ученика.
// Все три роли живут в одной таблице, как и в исходной схеме автошколы.
type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"not null;default:'student'"`
	PhotoURL string `json:"photoUrl"`

	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	Birthdate     *time.Time `json:"birthdate"`
	LicenseNumber string     `json:"licenseNumber"`

	// Поля ученика
	Progress *Progress `json:"progress,omitempty" gorm:"serializer:json"`

	// Поля инструктора
	Specialty       string `json:"specialty,omitempty"`
	YearsExperience int    `json:"yearsExperience,omitempty"`
}

// NewStudentProgress возвращает прогресс нового ученика: часы и баллы по нулям,
// цель по часам - значение по умолчанию, манёвры не отработаны.
func NewStudentProgress() *Progress {
	return &Progress{
		DrivingHours: 0,
		TargetHours:  DefaultTargetHours,
		CodeScore:    0,
	}
}
