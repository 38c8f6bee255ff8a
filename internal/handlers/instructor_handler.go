// planning-auto/internal/handlers/instructor_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/internal/middleware"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateInstructorInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"yearsExperience" binding:"min=0"`
}

type UpdateInstructorInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"yearsExperience" binding:"min=0"`
}

// ListInstructorsHandler возвращает список инструкторов.
func ListInstructorsHandler(c *gin.Context) {
	var instructors []models.User
	query := config.DB.Where("role = ?", models.RoleInstructor).Order("created_at desc")

	if c.Query("all") == "true" {
		if err := query.Find(&instructors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch instructors"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": instructors})
		return
	}

	var totalRows int64
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&instructors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch instructors"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, instructors, totalRows))
}

// GetInstructorHandler возвращает одного инструктора по ID.
func GetInstructorHandler(c *gin.Context) {
	var instructor models.User
	if err := config.DB.Where("role = ?", models.RoleInstructor).First(&instructor, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instructor not found"})
		return
	}
	c.JSON(http.StatusOK, instructor)
}

// CreateInstructorHandler создает инструктора. Как и ученику, ему выдается
// временный пароль, который возвращается администратору один раз.
func CreateInstructorHandler(c *gin.Context) {
	var input CreateInstructorInput
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

	instructor := models.User{
		Name:            input.Name,
		Email:           input.Email,
		Password:        string(hashedPassword),
		Role:            models.RoleInstructor,
		Phone:           input.Phone,
		Specialty:       input.Specialty,
		YearsExperience: input.YearsExperience,
	}

	if err := config.DB.Create(&instructor).Error; err != nil {
		slog.Error("Failed to create instructor", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create instructor"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"instructor":        instructor,
		"temporaryPassword": temporaryPassword,
	})
}

// UpdateInstructorHandler обновляет данные инструктора.
func UpdateInstructorHandler(c *gin.Context) {
	var instructor models.User
	if err := config.DB.Where("role = ?", models.RoleInstructor).First(&instructor, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instructor not found"})
		return
	}

	var input UpdateInstructorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	instructor.Name = input.Name
	instructor.Email = input.Email
	instructor.Phone = input.Phone
	instructor.Specialty = input.Specialty
	instructor.YearsExperience = input.YearsExperience

	if err := config.DB.Save(&instructor).Error; err != nil {
		slog.Error("Failed to update instructor", "error", err, "instructor_id", instructor.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update instructor"})
		return
	}

	middleware.InvalidateUserCache(instructor.ID)
	c.JSON(http.StatusOK, instructor)
}

// DeleteInstructorHandler soft-deletes an instructor.
func DeleteInstructorHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instructor ID"})
		return
	}

	if result := config.DB.Where("role = ?", models.RoleInstructor).Delete(&models.User{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete instructor"})
		return
	}

	middleware.InvalidateUserCache(uint(id))
	c.JSON(http.StatusOK, gin.H{"message": "Instructor deleted successfully"})
}
