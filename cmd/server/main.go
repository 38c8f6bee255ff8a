// planning-auto/cmd/server/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/internal/handlers"
	"github.com/UniversMood/planning-auto/internal/routes"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
)

func main() {
	config.InitJWT()
	config.ConnectDB()
	config.ConnectRedis()

	// Gemini не обязателен: без ключа подбор плана просто отключен.
	if err := config.InitGoogleServices(); err != nil {
		slog.Warn("Gemini client not initialized, AI suggestions disabled", "error", err)
	}

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Lesson{},
		&models.Notification{},
	)
	if err != nil {
		slog.Error("Ошибка миграции схемы БД", "error", err)
		os.Exit(1)
	}

	// Хаб уведомлений живет все время работы приложения.
	go handlers.GlobalHub.Run()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Запуск сервера", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}
