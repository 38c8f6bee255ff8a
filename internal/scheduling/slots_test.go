package scheduling

import (
	"testing"
	"time"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	if len(slots) != 24 {
		t.Fatalf("expected 24 half-hour slots, got %d", len(slots))
	}
	if slots[0] != "08:00" {
		t.Errorf("first slot = %q, want %q", slots[0], "08:00")
	}
	if slots[len(slots)-1] != "19:30" {
		t.Errorf("last slot = %q, want %q", slots[len(slots)-1], "19:30")
	}
	if slots[1] != "08:30" || slots[2] != "09:00" {
		t.Errorf("slots must alternate on the half hour, got %q, %q", slots[1], slots[2])
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"monday stays",
			time.Date(2025, time.September, 1, 14, 30, 0, 0, time.UTC),
			time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"wednesday rewinds to monday",
			time.Date(2025, time.September, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// Воскресенье принадлежит уходящей неделе, а не следующей.
			"sunday belongs to the ending week",
			time.Date(2025, time.September, 7, 23, 59, 0, 0, time.UTC),
			time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.in); !got.Equal(tc.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	days := WeekDays(start)

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if !days[0].Equal(start) {
		t.Errorf("first day = %v, want %v", days[0], start)
	}
	if days[6].Weekday() != time.Sunday {
		t.Errorf("last day weekday = %v, want Sunday", days[6].Weekday())
	}
}

func TestSlotKeys(t *testing.T) {
	day := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)

	// Начало занятия ровно на границе слота попадает в него.
	start := time.Date(2025, time.September, 3, 10, 30, 0, 0, time.UTC)
	if LessonSlotKey(start) != SlotKey(day, "10:30") {
		t.Errorf("lesson starting at 10:30 must map to the 10:30 slot")
	}

	// Начало не на получасовой границе не совпадает ни с одним слотом.
	offGrid := time.Date(2025, time.September, 3, 10, 45, 0, 0, time.UTC)
	for _, slot := range TimeSlots() {
		if LessonSlotKey(offGrid) == SlotKey(day, slot) {
			t.Errorf("lesson starting at 10:45 must not map to slot %q", slot)
		}
	}
}
