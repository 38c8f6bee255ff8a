package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestValidateLessonInput(t *testing.T) {
	start := time.Date(2025, time.September, 3, 10, 0, 0, 0, time.UTC)
	vehicle := uint(4)

	t.Run("start must precede end", func(t *testing.T) {
		input := LessonInput{Start: start, End: start, Type: models.LessonDriving}
		if err := validateLessonInput(&input); err == nil {
			t.Error("expected an error when start == end")
		}

		input = LessonInput{Start: start, End: start.Add(-time.Hour), Type: models.LessonDriving}
		if err := validateLessonInput(&input); err == nil {
			t.Error("expected an error when start > end")
		}
	})

	t.Run("code lesson drops the vehicle", func(t *testing.T) {
		input := LessonInput{
			Start:     start,
			End:       start.Add(time.Hour),
			Type:      models.LessonCode,
			VehicleID: &vehicle,
		}
		if err := validateLessonInput(&input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if input.VehicleID != nil {
			t.Error("vehicle must be cleared for a code lesson")
		}
	})

	t.Run("driving lesson keeps the vehicle", func(t *testing.T) {
		input := LessonInput{
			Start:     start,
			End:       start.Add(time.Hour + 30*time.Minute),
			Type:      models.LessonDriving,
			VehicleID: &vehicle,
		}
		if err := validateLessonInput(&input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if input.VehicleID == nil || *input.VehicleID != vehicle {
			t.Error("vehicle must be kept for a driving lesson")
		}
	})
}

func TestToLessonResponse(t *testing.T) {
	start := time.Date(2025, time.September, 3, 10, 0, 0, 0, time.UTC)
	vehicleID := uint(4)

	lesson := models.Lesson{
		Model:        gorm.Model{ID: 12},
		Start:        start,
		End:          start.Add(time.Hour),
		Type:         models.LessonDriving,
		Status:       models.LessonScheduled,
		StudentID:    10,
		InstructorID: 20,
		VehicleID:    &vehicleID,
		Student:      &models.User{Name: "Lucas Bernard"},
		Instructor:   &models.User{Name: "Sophie Martin"},
		Vehicle:      &models.Vehicle{VehicleModel: "Renault Clio"},
	}

	resp := toLessonResponse(lesson)

	if resp.Title != "Leçon de conduite" {
		t.Errorf("Title = %q, want %q", resp.Title, "Leçon de conduite")
	}
	if resp.Student != "Lucas Bernard" || resp.Instructor != "Sophie Martin" || resp.Vehicle != "Renault Clio" {
		t.Errorf("display names not propagated: %+v", resp)
	}

	// Без предзагруженных связей имена остаются пустыми, ID сохраняются.
	lesson.Student, lesson.Instructor, lesson.Vehicle = nil, nil, nil
	resp = toLessonResponse(lesson)
	if resp.Student != "" || resp.Instructor != "" || resp.Vehicle != "" {
		t.Errorf("expected empty display names without preloads, got %+v", resp)
	}
	if resp.StudentID != 10 || resp.InstructorID != 20 {
		t.Errorf("IDs must survive without preloads: %+v", resp)
	}
}

func TestUpdateLessonRejectsUnknownParticipants(t *testing.T) {
	db := setupTestDB(t)

	student := models.User{Name: "Lucas Bernard", Email: "lucas@exemple.fr", Role: models.RoleStudent}
	instructor := models.User{Name: "Sophie Martin", Email: "sophie@exemple.fr", Role: models.RoleInstructor}
	db.Create(&student)
	db.Create(&instructor)

	lesson := models.Lesson{
		Start:        time.Date(2025, time.September, 3, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2025, time.September, 3, 11, 0, 0, 0, time.UTC),
		Type:         models.LessonDriving,
		StudentID:    student.ID,
		InstructorID: instructor.ID,
		Status:       models.LessonScheduled,
	}
	db.Create(&lesson)

	// Перенос на несуществующего инструктора: 404, а не ошибка внешнего ключа.
	body := fmt.Sprintf(
		`{"start":"2025-09-03T14:00:00Z","end":"2025-09-03T15:00:00Z","type":"driving","studentId":%d,"instructorId":999999}`,
		student.ID)
	c, w := jsonContext(t, http.MethodPut, "/api/lessons/"+strconv.Itoa(int(lesson.ID)), body)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(lesson.ID))}}
	UpdateLessonHandler(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusNotFound, w.Body.String())
	}

	var unchanged models.Lesson
	db.First(&unchanged, lesson.ID)
	if unchanged.InstructorID != instructor.ID {
		t.Errorf("lesson instructor changed to %d, must stay %d", unchanged.InstructorID, instructor.ID)
	}
}
