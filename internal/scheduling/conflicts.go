// planning-auto/internal/scheduling/conflicts.go

// Package scheduling содержит чистую логику планирования занятий:
// проверку пересечений бронирований и разметку недельной сетки.
// Обработчики вызывают её внутри транзакции, чтобы проверка и вставка
// происходили атомарно.
package scheduling

import (
	"fmt"
	"time"

	"github.com/UniversMood/planning-auto/models"
)

// Candidate - проверяемое бронирование. Сопоставление ресурсов идёт строго
// по идентификаторам: совпадение имён двух разных людей не должно давать конфликт.
type Candidate struct {
	Start        time.Time
	End          time.Time
	StudentID    uint
	InstructorID uint
	VehicleID    *uint
	// ExcludeID - ID занятия, которое переносится: с самим собой оно не конфликтует.
	ExcludeID uint
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1,e1) и [s2,e2).
// Занятия, соприкасающиеся границами (10:30-12:00 после 09:00-10:30), не пересекаются.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FindConflicts возвращает список описаний конфликтов кандидата с уже
// запланированными занятиями или пустой список, если бронирование возможно.
// Отменённые занятия в проверке не участвуют. Для каждого пересекающегося по
// времени занятия независимо проверяются инструктор, ученик и автомобиль
// (последний - только когда он указан у обоих занятий).
func FindConflicts(candidate Candidate, existing []models.Lesson) []string {
	conflicts := []string{}

	for _, lesson := range existing {
		if lesson.Status == models.LessonCancelled {
			continue
		}
		if candidate.ExcludeID != 0 && lesson.ID == candidate.ExcludeID {
			continue
		}
		if !Overlaps(candidate.Start, candidate.End, lesson.Start, lesson.End) {
			continue
		}

		window := fmt.Sprintf("de %s à %s",
			lesson.Start.Format("15:04"), lesson.End.Format("15:04"))

		if lesson.InstructorID == candidate.InstructorID {
			conflicts = append(conflicts,
				fmt.Sprintf("Le moniteur %s est déjà réservé %s", instructorName(lesson), window))
		}
		if lesson.StudentID == candidate.StudentID {
			conflicts = append(conflicts,
				fmt.Sprintf("L'élève %s est déjà réservé %s", studentName(lesson), window))
		}
		if lesson.VehicleID != nil && candidate.VehicleID != nil && *lesson.VehicleID == *candidate.VehicleID {
			conflicts = append(conflicts,
				fmt.Sprintf("Le véhicule %s est déjà réservé %s", vehicleName(lesson), window))
		}
	}

	return conflicts
}

// Имена нужны только для текста сообщения; если связь не предзагружена,
// подставляем идентификатор.

func instructorName(l models.Lesson) string {
	if l.Instructor != nil {
		return l.Instructor.Name
	}
	return fmt.Sprintf("#%d", l.InstructorID)
}

func studentName(l models.Lesson) string {
	if l.Student != nil {
		return l.Student.Name
	}
	return fmt.Sprintf("#%d", l.StudentID)
}

func vehicleName(l models.Lesson) string {
	if l.Vehicle != nil {
		return l.Vehicle.VehicleModel
	}
	return fmt.Sprintf("#%d", *l.VehicleID)
}
