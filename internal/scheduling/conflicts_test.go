package scheduling

import (
	"strings"
	"testing"
	"time"

	"github.com/UniversMood/planning-auto/models"

	"gorm.io/gorm"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.September, 1, hour, min, 0, 0, time.UTC)
}

func lesson(id uint, start, end time.Time, studentID, instructorID uint, vehicleID *uint, status string) models.Lesson {
	return models.Lesson{
		Model:        gorm.Model{ID: id},
		Start:        start,
		End:          end,
		StudentID:    studentID,
		InstructorID: instructorID,
		VehicleID:    vehicleID,
		Status:       status,
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(9, 0), at(10, 30), at(10, 0), at(11, 0), true},
		{"touching boundaries", at(9, 0), at(10, 30), at(10, 30), at(12, 0), false},
		{"containment", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"disjoint", at(8, 0), at(9, 0), at(14, 0), at(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Errorf("Overlaps(%v,%v,%v,%v) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
			// Пересечение симметрично.
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Errorf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestOverlapsReflexive(t *testing.T) {
	if !Overlaps(at(9, 0), at(10, 30), at(9, 0), at(10, 30)) {
		t.Error("an interval must overlap itself")
	}
}

func TestFindConflictsInstructor(t *testing.T) {
	existing := []models.Lesson{
		lesson(1, at(9, 0), at(10, 30), 10, 20, nil, models.LessonScheduled),
	}

	// Пересечение по времени с тем же инструктором: ровно один конфликт.
	conflicts := FindConflicts(Candidate{
		Start: at(10, 0), End: at(11, 0), StudentID: 11, InstructorID: 20,
	}, existing)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %v", len(conflicts), conflicts)
	}
	if !strings.Contains(conflicts[0], "moniteur") {
		t.Errorf("expected an instructor conflict, got %q", conflicts[0])
	}

	// Занятие встык (полуоткрытые интервалы): конфликта нет.
	conflicts = FindConflicts(Candidate{
		Start: at(10, 30), End: at(12, 0), StudentID: 11, InstructorID: 20,
	}, existing)
	if len(conflicts) != 0 {
		t.Errorf("touching intervals must not conflict, got %v", conflicts)
	}
}

func TestFindConflictsStudent(t *testing.T) {
	existing := []models.Lesson{
		lesson(1, at(9, 0), at(10, 30), 10, 20, nil, models.LessonScheduled),
	}

	conflicts := FindConflicts(Candidate{
		Start: at(9, 30), End: at(10, 0), StudentID: 10, InstructorID: 21,
	}, existing)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %v", len(conflicts), conflicts)
	}
	if !strings.Contains(conflicts[0], "élève") {
		t.Errorf("expected a student conflict, got %q", conflicts[0])
	}
}

func TestFindConflictsVehicle(t *testing.T) {
	clio := uint(5)
	existing := []models.Lesson{
		lesson(1, at(9, 0), at(10, 30), 10, 20, &clio, models.LessonScheduled),
	}

	// Кандидат без автомобиля: отсутствие автомобиля никогда не конфликтует.
	conflicts := FindConflicts(Candidate{
		Start: at(9, 30), End: at(10, 0), StudentID: 11, InstructorID: 21,
	}, existing)
	if len(conflicts) != 0 {
		t.Errorf("candidate without a vehicle must not raise a vehicle conflict, got %v", conflicts)
	}

	// Тот же автомобиль в пересекающемся окне: конфликт.
	sameVehicle := uint(5)
	conflicts = FindConflicts(Candidate{
		Start: at(9, 30), End: at(10, 0), StudentID: 11, InstructorID: 21, VehicleID: &sameVehicle,
	}, existing)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 vehicle conflict, got %d: %v", len(conflicts), conflicts)
	}
	if !strings.Contains(conflicts[0], "véhicule") {
		t.Errorf("expected a vehicle conflict, got %q", conflicts[0])
	}

	// Другой автомобиль: конфликта нет.
	otherVehicle := uint(6)
	conflicts = FindConflicts(Candidate{
		Start: at(9, 30), End: at(10, 0), StudentID: 11, InstructorID: 21, VehicleID: &otherVehicle,
	}, existing)
	if len(conflicts) != 0 {
		t.Errorf("different vehicles must not conflict, got %v", conflicts)
	}
}

func TestFindConflictsIgnoresCancelled(t *testing.T) {
	existing := []models.Lesson{
		lesson(1, at(9, 0), at(10, 30), 10, 20, nil, models.LessonCancelled),
	}

	conflicts := FindConflicts(Candidate{
		Start: at(9, 0), End: at(10, 30), StudentID: 10, InstructorID: 20,
	}, existing)
	if len(conflicts) != 0 {
		t.Errorf("cancelled lessons must not participate in conflict checking, got %v", conflicts)
	}
}

func TestFindConflictsExcludesSelf(t *testing.T) {
	existing := []models.Lesson{
		lesson(7, at(9, 0), at(10, 30), 10, 20, nil, models.LessonScheduled),
	}

	// Перенос занятия: с самим собой оно не конфликтует.
	conflicts := FindConflicts(Candidate{
		Start: at(9, 30), End: at(11, 0), StudentID: 10, InstructorID: 20, ExcludeID: 7,
	}, existing)
	if len(conflicts) != 0 {
		t.Errorf("a lesson must not conflict with itself on reschedule, got %v", conflicts)
	}
}

func TestFindConflictsMultipleResources(t *testing.T) {
	clio := uint(5)
	existing := []models.Lesson{
		lesson(1, at(9, 0), at(10, 30), 10, 20, &clio, models.LessonScheduled),
	}

	// Совпадают инструктор, ученик и автомобиль: три независимых конфликта.
	sameVehicle := uint(5)
	conflicts := FindConflicts(Candidate{
		Start: at(8, 0), End: at(12, 0), StudentID: 10, InstructorID: 20, VehicleID: &sameVehicle,
	}, existing)
	if len(conflicts) != 3 {
		t.Fatalf("expected 3 conflicts, got %d: %v", len(conflicts), conflicts)
	}
}
