// planning-auto/internal/handlers/student_handler.go
package handlers

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/internal/middleware"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- Структуры для входящих данных по УЧЕНИКАМ ---

type CreateStudentInput struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate"` // "2006-01-02"
}

type UpdateStudentInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Birthdate     string `json:"birthdate"`
	LicenseNumber string `json:"licenseNumber"`
}

type UpdateProgressInput struct {
	DrivingHours int              `json:"drivingHours" binding:"min=0"`
	TargetHours  int              `json:"targetHours" binding:"required,min=1"`
	CodeScore    int              `json:"codeScore" binding:"min=0,max=40"`
	Maneuvers    models.Maneuvers `json:"maneuvers"`
}

// parseDate разбирает дату формата "2006-01-02"; пустая строка дает nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// generateTemporaryPassword возвращает случайный пароль для нового ученика.
// Пароль показывается администратору один раз в ответе на создание.
func generateTemporaryPassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	const length = 12

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}

// ListStudentsHandler возвращает список учеников.
func ListStudentsHandler(c *gin.Context) {
	var students []models.User
	query := config.DB.Where("role = ?", models.RoleStudent).Order("created_at desc")

	if c.Query("all") == "true" {
		if err := query.Find(&students).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch students"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": students})
		return
	}

	var totalRows int64
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch students"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, students, totalRows))
}

// GetStudentHandler возвращает одного ученика по ID.
func GetStudentHandler(c *gin.Context) {
	var student models.User
	if err := config.DB.Where("role = ?", models.RoleStudent).First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// CreateStudentHandler создает ученика с временным паролем и прогрессом по умолчанию.
func CreateStudentHandler(c *gin.Context) {
	var input CreateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var existing models.User
	err := config.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un utilisateur avec cet email existe déjà"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	temporaryPassword, err := generateTemporaryPassword()
	if err != nil {
		slog.Error("Failed to generate temporary password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate password"})
		return
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	student := models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleStudent,
		Phone:     input.Phone,
		Address:   input.Address,
		Birthdate: parseDate(input.Birthdate),
		Progress:  models.NewStudentProgress(),
	}

	if err := config.DB.Create(&student).Error; err != nil {
		slog.Error("Failed to create student", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"student":           student,
		"temporaryPassword": temporaryPassword,
	})
}

// UpdateStudentHandler обновляет контактные данные ученика.
func UpdateStudentHandler(c *gin.Context) {
	var student models.User
	if err := config.DB.Where("role = ?", models.RoleStudent).First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var input UpdateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	student.Name = input.Name
	student.Email = input.Email
	student.Phone = input.Phone
	student.Address = input.Address
	student.Birthdate = parseDate(input.Birthdate)
	student.LicenseNumber = input.LicenseNumber

	if err := config.DB.Save(&student).Error; err != nil {
		slog.Error("Failed to update student", "error", err, "student_id", student.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}

	middleware.InvalidateUserCache(student.ID)
	c.JSON(http.StatusOK, student)
}

// UpdateStudentProgressHandler обновляет учебный прогресс ученика.
func UpdateStudentProgressHandler(c *gin.Context) {
	var student models.User
	if err := config.DB.Where("role = ?", models.RoleStudent).First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	student.Progress = &models.Progress{
		DrivingHours: input.DrivingHours,
		TargetHours:  input.TargetHours,
		CodeScore:    input.CodeScore,
		Maneuvers:    input.Maneuvers,
	}

	if err := config.DB.Save(&student).Error; err != nil {
		slog.Error("Failed to update student progress", "error", err, "student_id", student.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress"})
		return
	}

	// Ученику приходит уведомление о том, что инструктор отметил его прогресс.
	notifyUser(student.ID, "Progression mise à jour",
		"Votre progression a été mise à jour par votre moniteur.", models.NotificationInfo)

	c.JSON(http.StatusOK, student)
}

// DeleteStudentHandler soft-deletes a student.
func DeleteStudentHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	if result := config.DB.Where("role = ?", models.RoleStudent).Delete(&models.User{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete student"})
		return
	}

	middleware.InvalidateUserCache(uint(id))
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}
