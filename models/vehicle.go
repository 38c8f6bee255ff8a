// planning-auto/models/vehicle.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы автомобиля.
const (
	VehicleAvailable   = "available"
	VehicleReserved    = "reserved"
	VehicleMaintenance = "maintenance"
)

// Vehicle представляет учебный автомобиль автошколы.
type Vehicle struct {
	gorm.Model
	VehicleModel string `json:"model" gorm:"column:model;not null"`
	Year         int    `json:"year"`
	// Госномер уникален: два автомобиля с одним номером - ошибка данных.
	Registration string `json:"registration" gorm:"unique;not null"`
	// Коробка передач: "Manuelle" или "Automatique".
	Type string `json:"type"`
	// Топливо: "Essence", "Diesel", "Électrique", "Hybride".
	Fuel            string     `json:"fuel"`
	Status          string     `json:"status" gorm:"default:'available'"`
	ImageURL        string     `json:"image"`
	LastMaintenance *time.Time `json:"lastMaintenance"`
}
