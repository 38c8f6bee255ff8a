// planning-auto/internal/handlers/notification_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
)

type CreateNotificationInput struct {
	UserID  uint   `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=info warning success error"`
}

// notifyUser создает уведомление и доставляет его в открытые сессии получателя.
// Ошибка записи не прерывает основную операцию: уведомления вторичны.
func notifyUser(userID uint, title, message, notificationType string) {
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		slog.Error("Failed to create notification", "error", err, "user_id", userID)
		return
	}
	GlobalHub.Push(notification)
}

// ListNotificationsHandler возвращает уведомления текущего пользователя,
// новые сверху.
func ListNotificationsHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var notifications []models.Notification
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		slog.Error("Failed to fetch notifications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch notifications"})
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{"data": notifications, "unreadCount": unread})
}

// MarkNotificationReadHandler помечает одно уведомление прочитанным.
// Чужие уведомления недоступны.
func MarkNotificationReadHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var notification models.Notification
	err := config.DB.
		Where("user_id = ?", userID).
		First(&notification, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	notification.IsRead = true
	if err := config.DB.Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllNotificationsReadHandler помечает все уведомления пользователя прочитанными.
func MarkAllNotificationsReadHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// CreateNotificationHandler позволяет администратору отправить уведомление
// любому пользователю.
func CreateNotificationHandler(c *gin.Context) {
	var input CreateNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var target models.User
	if err := config.DB.First(&target, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	notificationType := input.Type
	if notificationType == "" {
		notificationType = models.NotificationInfo
	}

	notification := models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    notificationType,
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		slog.Error("Failed to create notification", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	GlobalHub.Push(notification)
	c.JSON(http.StatusCreated, notification)
}
