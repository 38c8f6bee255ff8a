// planning-auto/internal/handlers/dashboard_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
)

// AdminDashboardHandler возвращает сводку по автошколе для панели администратора.
func AdminDashboardHandler(c *gin.Context) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var totalStudents, newStudentsThisWeek, totalInstructors int64
	var totalVehicles, vehiclesInMaintenance, todayLessons int64

	config.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&totalStudents)
	config.DB.Model(&models.User{}).Where("role = ? AND created_at >= ?", models.RoleStudent, weekAgo).Count(&newStudentsThisWeek)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&totalInstructors)
	config.DB.Model(&models.Vehicle{}).Count(&totalVehicles)
	config.DB.Model(&models.Vehicle{}).Where("status = ?", models.VehicleMaintenance).Count(&vehiclesInMaintenance)
	config.DB.Model(&models.Lesson{}).
		Where("status <> ?", models.LessonCancelled).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Count(&todayLessons)

	c.JSON(http.StatusOK, gin.H{
		"totalStudents":         totalStudents,
		"newStudentsThisWeek":   newStudentsThisWeek,
		"totalInstructors":      totalInstructors,
		"totalVehicles":         totalVehicles,
		"vehiclesInMaintenance": vehiclesInMaintenance,
		"todayLessons":          todayLessons,
		"remainingLessons":      remainingToday(todayLessons, now),
	})
}

// remainingToday грубо оценивает оставшиеся на сегодня занятия: рабочий день
// начинается в 08:00, среднее занятие длится полтора часа. До начала рабочего
// дня ни одно занятие еще не прошло.
func remainingToday(total int64, now time.Time) int {
	elapsed := int((float64(now.Hour()) - 8) / 1.5)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := int(total) - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// InstructorDashboardHandler возвращает сводку для инструктора: занятия на
// сегодня, ближайшие занятия и количество его учеников.
func InstructorDashboardHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todayLessons []models.Lesson
	err := config.DB.
		Preload("Student").
		Preload("Vehicle").
		Where("instructor_id = ? AND status <> ?", userID, models.LessonCancelled).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time asc").
		Find(&todayLessons).Error
	if err != nil {
		slog.Error("Failed to fetch today lessons", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch lessons"})
		return
	}

	var upcoming []models.Lesson
	config.DB.
		Preload("Student").
		Preload("Vehicle").
		Where("instructor_id = ? AND status = ?", userID, models.LessonScheduled).
		Where("start_time >= ?", now).
		Order("start_time asc").
		Limit(5).
		Find(&upcoming)

	var studentCount int64
	config.DB.Model(&models.Lesson{}).
		Where("instructor_id = ? AND status <> ?", userID, models.LessonCancelled).
		Distinct("student_id").
		Count(&studentCount)

	today := make([]LessonResponse, 0, len(todayLessons))
	for _, l := range todayLessons {
		today = append(today, toLessonResponse(l))
	}
	next := make([]LessonResponse, 0, len(upcoming))
	for _, l := range upcoming {
		next = append(next, toLessonResponse(l))
	}

	c.JSON(http.StatusOK, gin.H{
		"todayLessons":    today,
		"upcomingLessons": next,
		"studentCount":    studentCount,
	})
}

// StudentDashboardHandler возвращает сводку для ученика: прогресс с процентами,
// ближайшие занятия и текущие инструктор и автомобиль.
func StudentDashboardHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var student models.User
	if err := config.DB.First(&student, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	progress := student.Progress
	if progress == nil {
		progress = models.NewStudentProgress()
	}

	var upcoming []models.Lesson
	config.DB.
		Preload("Instructor").
		Preload("Vehicle").
		Where("student_id = ? AND status <> ?", userID, models.LessonCancelled).
		Where("start_time >= ?", time.Now()).
		Order("start_time asc").
		Limit(5).
		Find(&upcoming)

	// Текущие инструктор и автомобиль - из самого свежего неотмененного занятия.
	var lastLesson models.Lesson
	lastErr := config.DB.
		Preload("Instructor").
		Preload("Vehicle").
		Where("student_id = ? AND status <> ?", userID, models.LessonCancelled).
		Order("start_time desc").
		First(&lastLesson).Error

	next := make([]LessonResponse, 0, len(upcoming))
	for _, l := range upcoming {
		next = append(next, toLessonResponse(l))
	}

	response := gin.H{
		"progress":        progress,
		"drivingPercent":  progress.DrivingPercent(),
		"codePercent":     progress.CodePercent(),
		"codeReady":       progress.CodeReady(),
		"upcomingLessons": next,
	}
	if lastErr == nil {
		if lastLesson.Instructor != nil {
			response["instructor"] = gin.H{
				"id":              lastLesson.Instructor.ID,
				"name":            lastLesson.Instructor.Name,
				"specialty":       lastLesson.Instructor.Specialty,
				"yearsExperience": lastLesson.Instructor.YearsExperience,
			}
		}
		if lastLesson.Vehicle != nil {
			response["vehicle"] = lastLesson.Vehicle
		}
	}

	c.JSON(http.StatusOK, response)
}
