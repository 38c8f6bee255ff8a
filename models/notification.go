// planning-auto/models/notification.go

package models

import "gorm.io/gorm"

// Категории уведомлений.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification представляет уведомление пользователя.
type Notification struct {
	gorm.Model
	UserID  uint   `json:"userId" gorm:"not null;index"`
	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type" gorm:"default:'info'"`
	IsRead  bool   `json:"isRead" gorm:"default:false"`
}
