// planning-auto/internal/handlers/export_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/internal/scheduling"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportWeekScheduleHandler выгружает расписание недели в xlsx.
func ExportWeekScheduleHandler(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter"})
			return
		}
		date = parsed
	}

	weekStart := scheduling.WeekStart(date)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var lessons []models.Lesson
	err := config.DB.
		Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		Where("status <> ?", models.LessonCancelled).
		Where("start_time >= ? AND start_time < ?", weekStart, weekEnd).
		Order("start_time asc").
		Find(&lessons).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Planning"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Début", "Fin", "Type", "Élève", "Moniteur", "Véhicule", "Statut"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, lesson := range lessons {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), lesson.Start.Format("02.01.2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), lesson.Start.Format("15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), lesson.End.Format("15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), lesson.Title())
		if lesson.Student != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), lesson.Student.Name)
		}
		if lesson.Instructor != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), lesson.Instructor.Name)
		}
		if lesson.Vehicle != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), lesson.Vehicle.VehicleModel)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), lesson.Status)
	}

	fileName := fmt.Sprintf("planning_%s.xlsx", weekStart.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// ExportStudentsHandler выгружает реестр учеников с их прогрессом в xlsx.
func ExportStudentsHandler(c *gin.Context) {
	var students []models.User
	err := config.DB.
		Where("role = ?", models.RoleStudent).
		Order("name asc").
		Find(&students).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Élèves"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Nom", "Email", "Téléphone", "Heures de conduite", "Objectif d'heures", "Score de code", "Prêt pour le code"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, student := range students {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), student.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), student.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), student.Phone)
		if student.Progress != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), student.Progress.DrivingHours)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), student.Progress.TargetHours)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("%d/%d", student.Progress.CodeScore, models.CodeScoreMax))
			if student.Progress.CodeReady() {
				f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), "Oui")
			} else {
				f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), "Non")
			}
		}
	}

	fileName := fmt.Sprintf("eleves_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
