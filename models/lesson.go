// planning-auto/models/lesson.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы занятий.
const (
	LessonDriving = "driving"
	LessonCode    = "code"
	LessonExam    = "exam"
)

// Статусы занятия. Отмена - это смена статуса, запись из базы не удаляется.
const (
	LessonScheduled = "scheduled"
	LessonCompleted = "completed"
	LessonCancelled = "cancelled"
)

// Lesson представляет занятие: вождение, теория или экзамен.
// Инвариант Start < End проверяется на уровне обработчиков при создании и переносе.
type Lesson struct {
	gorm.Model
	// Колонки называются start_time/end_time: "end" - зарезервированное слово в SQL.
	Start        time.Time `json:"start" gorm:"column:start_time;not null;index"`
	End          time.Time `json:"end" gorm:"column:end_time;not null"`
	Type         string    `json:"type" gorm:"not null;default:'driving'"`
	StudentID    uint      `json:"studentId" gorm:"not null;index"`
	InstructorID uint      `json:"instructorId" gorm:"not null;index"`
	// Автомобиль не назначается на теоретические занятия, поэтому поле опционально.
	VehicleID *uint  `json:"vehicleId" gorm:"index"`
	Status    string `json:"status" gorm:"not null;default:'scheduled';index"`
	Notes     string `json:"notes"`

	Student    *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Instructor *User    `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Vehicle    *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

// Title возвращает отображаемое название занятия по его типу.
func (l Lesson) Title() string {
	switch l.Type {
	case LessonDriving:
		return "Leçon de conduite"
	case LessonCode:
		return "Séance de code"
	case LessonExam:
		return "Examen blanc"
	default:
		return "Séance"
	}
}
