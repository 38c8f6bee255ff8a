// planning-auto/internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tokenTTL - время жизни сессионного токена.
const tokenTTL = 72 * time.Hour

// RegisterInput defines the structure for the registration form.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput defines the structure for the login form.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// generateToken выписывает HMAC-подписанный JWT с идентификатором пользователя.
func generateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtKey)
}

func sessionResponse(user models.User, tokenStr string) gin.H {
	return gin.H{
		"token": tokenStr,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}
}

// RegisterHandler создает нового ученика по данным формы регистрации.
// Повторная регистрация на занятый email не создает вторую запись.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
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
		slog.Error("Database error checking email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
		Progress: models.NewStudentProgress(),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		slog.Error("Failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	tokenStr, err := generateToken(user.ID)
	if err != nil {
		slog.Error("Failed to sign token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie("auth_token", tokenStr, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusCreated, sessionResponse(user, tokenStr))
}

// LoginHandler проверяет email и пароль и открывает сессию.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		// Не уточняем, что именно неверно: email или пароль.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	tokenStr, err := generateToken(user.ID)
	if err != nil {
		slog.Error("Failed to sign token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie("auth_token", tokenStr, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, sessionResponse(user, tokenStr))
}

// LogoutHandler закрывает сессию, сбрасывая cookie с токеном.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
