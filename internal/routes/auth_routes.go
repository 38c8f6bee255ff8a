// planning-auto/internal/routes/auth_routes.go
package routes

import (
	"github.com/UniversMood/planning-auto/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes регистрирует публичные маршруты для аутентификации.
// Эти маршруты не требуют middleware для проверки токена.
func RegisterAuthRoutes(r *gin.Engine) {
	// Обработка формы входа.
	r.POST("/login", handlers.LoginHandler)

	// Регистрация нового ученика.
	r.POST("/register", handlers.RegisterHandler)

	// Выход пользователя из системы.
	r.GET("/logout", handlers.LogoutHandler)
}
