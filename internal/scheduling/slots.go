// planning-auto/internal/scheduling/slots.go

package scheduling

import (
	"fmt"
	"time"
)

// Сетка недельного расписания: фиксированные получасовые слоты с 08:00 до 19:30.
const (
	firstSlotHour = 8
	lastSlotHour  = 19
)

// TimeSlots возвращает метки всех слотов сетки: "08:00", "08:30", ... "19:30".
func TimeSlots() []string {
	slots := make([]string, 0, (lastSlotHour-firstSlotHour+1)*2)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
		slots = append(slots, fmt.Sprintf("%02d:30", hour))
	}
	return slots
}

// WeekStart возвращает понедельник 00:00 недели, в которую попадает t.
func WeekStart(t time.Time) time.Time {
	// time.Weekday: воскресенье = 0, поэтому сдвиг для него особый.
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// WeekDays возвращает семь дней недели, начиная с понедельника start.
func WeekDays(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// SlotKey возвращает ключ слота для начала занятия: "2006-01-02 15:04".
// Привязка к слоту - это точное совпадение начала занятия с меткой слота.
// Занятие, начинающееся не на получасовой границе, ни в один слот не попадает.
func SlotKey(day time.Time, slot string) string {
	return day.Format("2006-01-02") + " " + slot
}

// LessonSlotKey возвращает ключ слота, в который попадает начало занятия.
func LessonSlotKey(start time.Time) string {
	return start.Format("2006-01-02 15:04")
}
