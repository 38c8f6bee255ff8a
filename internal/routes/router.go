// planning-auto/internal/routes/router.go
package routes

import (
	"github.com/UniversMood/planning-auto/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes инициализирует все маршруты приложения.
func SetupRoutes(r *gin.Engine) {
	// Публичные маршруты: вход, регистрация, выход.
	RegisterAuthRoutes(r)

	// Загруженные фото профилей.
	r.Static("/static", "./static")

	// Все остальные маршруты требуют аутентификации: middleware проверяет
	// наличие и валидность JWT токена.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
