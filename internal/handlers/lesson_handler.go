// planning-auto/internal/handlers/lesson_handler.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/internal/scheduling"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bookingLockKey - ключ advisory-блокировки Postgres, сериализующей бронирования.
// Проверка конфликтов и вставка занятия должны быть атомарными: без блокировки
// два параллельных запроса могут оба пройти проверку и создать пересекающиеся
// занятия. Объем бронирований одной автошколы мал, одна очередь не мешает.
const bookingLockKey = 874523

var errBookingConflict = errors.New("booking conflict")

type LessonInput struct {
	Start        time.Time `json:"start" binding:"required"`
	End          time.Time `json:"end" binding:"required"`
	Type         string    `json:"type" binding:"required,oneof=driving code exam"`
	StudentID    uint      `json:"studentId" binding:"required"`
	InstructorID uint      `json:"instructorId" binding:"required"`
	VehicleID    *uint     `json:"vehicleId"`
	Notes        string    `json:"notes"`
}

// LessonResponse - занятие вместе с отображаемыми именами участников.
type LessonResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	StudentID    uint      `json:"studentId"`
	InstructorID uint      `json:"instructorId"`
	VehicleID    *uint     `json:"vehicleId"`
	Student      string    `json:"student"`
	Instructor   string    `json:"instructor"`
	Vehicle      string    `json:"vehicle,omitempty"`
}

func toLessonResponse(l models.Lesson) LessonResponse {
	resp := LessonResponse{
		ID:           l.ID,
		Title:        l.Title(),
		Start:        l.Start,
		End:          l.End,
		Type:         l.Type,
		Status:       l.Status,
		Notes:        l.Notes,
		StudentID:    l.StudentID,
		InstructorID: l.InstructorID,
		VehicleID:    l.VehicleID,
	}
	if l.Student != nil {
		resp.Student = l.Student.Name
	}
	if l.Instructor != nil {
		resp.Instructor = l.Instructor.Name
	}
	if l.Vehicle != nil {
		resp.Vehicle = l.Vehicle.VehicleModel
	}
	return resp
}

// validateLessonInput нормализует занятие и проверяет его инварианты.
// На теорию автомобиль не назначается, поле молча сбрасывается.
func validateLessonInput(input *LessonInput) error {
	if !input.Start.Before(input.End) {
		return errors.New("La date de début doit précéder la date de fin")
	}
	if input.Type == models.LessonCode {
		input.VehicleID = nil
	}
	return nil
}

// ListLessonsHandler возвращает занятия с именами участников.
// По умолчанию отменённые занятия скрыты, ?all=true показывает и их.
func ListLessonsHandler(c *gin.Context) {
	query := config.DB.
		Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		Order("start_time asc")

	if c.Query("all") != "true" {
		query = query.Where("status <> ?", models.LessonCancelled)
	}
	if id := c.Query("instructorId"); id != "" {
		query = query.Where("instructor_id = ?", id)
	}
	if id := c.Query("studentId"); id != "" {
		query = query.Where("student_id = ?", id)
	}
	if id := c.Query("vehicleId"); id != "" {
		query = query.Where("vehicle_id = ?", id)
	}

	var lessons []models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		slog.Error("Failed to fetch lessons", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch lessons"})
		return
	}

	responses := make([]LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		responses = append(responses, toLessonResponse(l))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetLessonHandler возвращает одно занятие по ID.
func GetLessonHandler(c *gin.Context) {
	var lesson models.Lesson
	err := config.DB.
		Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		First(&lesson, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusOK, toLessonResponse(lesson))
}

// checkAndSave выполняет проверку конфликтов и сохранение занятия в одной
// транзакции под advisory-блокировкой. Возвращает список конфликтов, если
// бронирование невозможно.
func checkAndSave(candidate scheduling.Candidate, save func(tx *gorm.DB) error) ([]string, error) {
	var conflicts []string

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", bookingLockKey).Error; err != nil {
			return fmt.Errorf("failed to take booking lock: %w", err)
		}

		var overlapping []models.Lesson
		err := tx.
			Preload("Student").
			Preload("Instructor").
			Preload("Vehicle").
			Where("status <> ?", models.LessonCancelled).
			Where("start_time < ? AND end_time > ?", candidate.End, candidate.Start).
			Find(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to load overlapping lessons: %w", err)
		}

		conflicts = scheduling.FindConflicts(candidate, overlapping)
		if len(conflicts) > 0 {
			return errBookingConflict
		}

		return save(tx)
	})

	if errors.Is(err, errBookingConflict) {
		return conflicts, nil
	}
	return nil, err
}

// loadLessonParticipants проверяет, что ученик и инструктор существуют в своих
// ролях, а автомобиль, если указан, есть в парке и не в ремонте. При первой
// провалившейся проверке возвращает HTTP-статус и сообщение для ответа.
func loadLessonParticipants(input LessonInput) (student, instructor models.User, status int, message string) {
	if err := config.DB.Where("role = ?", models.RoleStudent).First(&student, input.StudentID).Error; err != nil {
		return student, instructor, http.StatusNotFound, "Student not found"
	}
	if err := config.DB.Where("role = ?", models.RoleInstructor).First(&instructor, input.InstructorID).Error; err != nil {
		return student, instructor, http.StatusNotFound, "Instructor not found"
	}
	if input.VehicleID != nil {
		var vehicle models.Vehicle
		if err := config.DB.First(&vehicle, *input.VehicleID).Error; err != nil {
			return student, instructor, http.StatusNotFound, "Vehicle not found"
		}
		if vehicle.Status == models.VehicleMaintenance {
			return student, instructor, http.StatusBadRequest, "Ce véhicule est en maintenance"
		}
	}
	return student, instructor, 0, ""
}

// CreateLessonHandler создает занятие. Проверка двойных бронирований
// выполняется на сервере, в транзакции; при конфликте возвращается 409
// со списком всех найденных пересечений.
func CreateLessonHandler(c *gin.Context) {
	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validateLessonInput(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, instructor, status, message := loadLessonParticipants(input)
	if status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	lesson := models.Lesson{
		Start:        input.Start,
		End:          input.End,
		Type:         input.Type,
		StudentID:    input.StudentID,
		InstructorID: input.InstructorID,
		VehicleID:    input.VehicleID,
		Status:       models.LessonScheduled,
		Notes:        input.Notes,
	}

	candidate := scheduling.Candidate{
		Start:        input.Start,
		End:          input.End,
		StudentID:    input.StudentID,
		InstructorID: input.InstructorID,
		VehicleID:    input.VehicleID,
	}

	conflicts, err := checkAndSave(candidate, func(tx *gorm.DB) error {
		return tx.Create(&lesson).Error
	})
	if err != nil {
		slog.Error("Failed to create lesson", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}
	if len(conflicts) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Conflit de réservation détecté",
			"conflicts": conflicts,
		})
		return
	}

	window := fmt.Sprintf("%s - %s", lesson.Start.Format("02/01 15:04"), lesson.End.Format("15:04"))
	notifyUser(lesson.StudentID, "Nouvelle leçon planifiée",
		fmt.Sprintf("%s avec %s, %s", lesson.Title(), instructor.Name, window), models.NotificationInfo)
	notifyUser(lesson.InstructorID, "Nouvelle leçon planifiée",
		fmt.Sprintf("%s avec %s, %s", lesson.Title(), student.Name, window), models.NotificationInfo)

	lesson.Student = &student
	lesson.Instructor = &instructor
	c.JSON(http.StatusCreated, toLessonResponse(lesson))
}

// UpdateLessonHandler переносит или изменяет занятие. Проверка конфликтов
// такая же, как при создании, но само занятие из неё исключается.
func UpdateLessonHandler(c *gin.Context) {
	var lesson models.Lesson
	if err := config.DB.First(&lesson, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if lesson.Status == models.LessonCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une leçon annulée ne peut pas être modifiée"})
		return
	}

	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validateLessonInput(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Перенос может менять участников, проверки те же, что при создании.
	if _, _, status, message := loadLessonParticipants(input); status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	lesson.Start = input.Start
	lesson.End = input.End
	lesson.Type = input.Type
	lesson.StudentID = input.StudentID
	lesson.InstructorID = input.InstructorID
	lesson.VehicleID = input.VehicleID
	lesson.Notes = input.Notes

	candidate := scheduling.Candidate{
		Start:        input.Start,
		End:          input.End,
		StudentID:    input.StudentID,
		InstructorID: input.InstructorID,
		VehicleID:    input.VehicleID,
		ExcludeID:    lesson.ID,
	}

	conflicts, err := checkAndSave(candidate, func(tx *gorm.DB) error {
		return tx.Save(&lesson).Error
	})
	if err != nil {
		slog.Error("Failed to update lesson", "error", err, "lesson_id", lesson.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	if len(conflicts) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Conflit de réservation détecté",
			"conflicts": conflicts,
		})
		return
	}

	c.JSON(http.StatusOK, toLessonResponse(lesson))
}

// CancelLessonHandler отменяет занятие. Это смена статуса, а не удаление:
// запись остается в базе, но из проверки конфликтов и сетки недели выпадает.
func CancelLessonHandler(c *gin.Context) {
	var lesson models.Lesson
	if err := config.DB.First(&lesson, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if lesson.Status == models.LessonCancelled {
		c.JSON(http.StatusOK, toLessonResponse(lesson))
		return
	}

	lesson.Status = models.LessonCancelled
	if err := config.DB.Save(&lesson).Error; err != nil {
		slog.Error("Failed to cancel lesson", "error", err, "lesson_id", lesson.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel lesson"})
		return
	}

	window := fmt.Sprintf("%s - %s", lesson.Start.Format("02/01 15:04"), lesson.End.Format("15:04"))
	notifyUser(lesson.StudentID, "Leçon annulée",
		fmt.Sprintf("%s du %s a été annulée", lesson.Title(), window), models.NotificationWarning)
	notifyUser(lesson.InstructorID, "Leçon annulée",
		fmt.Sprintf("%s du %s a été annulée", lesson.Title(), window), models.NotificationWarning)

	c.JSON(http.StatusOK, toLessonResponse(lesson))
}

// CompleteLessonHandler отмечает занятие проведенным.
func CompleteLessonHandler(c *gin.Context) {
	var lesson models.Lesson
	if err := config.DB.First(&lesson, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if lesson.Status == models.LessonCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une leçon annulée ne peut pas être terminée"})
		return
	}

	lesson.Status = models.LessonCompleted
	if err := config.DB.Save(&lesson).Error; err != nil {
		slog.Error("Failed to complete lesson", "error", err, "lesson_id", lesson.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete lesson"})
		return
	}

	c.JSON(http.StatusOK, toLessonResponse(lesson))
}
