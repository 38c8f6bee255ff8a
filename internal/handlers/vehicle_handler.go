// planning-auto/internal/handlers/vehicle_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VehicleInput struct {
	Model           string `json:"model" binding:"required"`
	Year            int    `json:"year" binding:"required"`
	Registration    string `json:"registration" binding:"required"`
	Type            string `json:"type" binding:"required"`
	Fuel            string `json:"fuel" binding:"required"`
	Status          string `json:"status"`
	ImageURL        string `json:"image"`
	LastMaintenance string `json:"lastMaintenance"` // "2006-01-02"
}

// ListVehiclesHandler возвращает список автомобилей.
func ListVehiclesHandler(c *gin.Context) {
	var vehicles []models.Vehicle
	query := config.DB.Order("created_at desc")

	// Фильтр по статусу: ?status=available
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if c.Query("all") == "true" {
		if err := query.Find(&vehicles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch vehicles"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": vehicles})
		return
	}

	var totalRows int64
	config.DB.Model(&models.Vehicle{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, vehicles, totalRows))
}

// GetVehicleHandler возвращает один автомобиль по ID.
func GetVehicleHandler(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// CreateVehicleHandler добавляет автомобиль. Госномер уникален:
// повторная регистрация того же номера - конфликт, а не вторая запись.
func CreateVehicleHandler(c *gin.Context) {
	var input VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var existing models.Vehicle
	err := config.DB.Where("registration = ?", input.Registration).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un véhicule avec cette immatriculation existe déjà"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	status := input.Status
	if status == "" {
		status = models.VehicleAvailable
	}

	vehicle := models.Vehicle{
		VehicleModel:    input.Model,
		Year:            input.Year,
		Registration:    input.Registration,
		Type:            input.Type,
		Fuel:            input.Fuel,
		Status:          status,
		ImageURL:        input.ImageURL,
		LastMaintenance: parseDate(input.LastMaintenance),
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		slog.Error("Failed to create vehicle", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicleHandler обновляет данные автомобиля.
func UpdateVehicleHandler(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var input VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Смена госномера тоже не должна давать дубликат.
	if input.Registration != vehicle.Registration {
		var existing models.Vehicle
		err := config.DB.Where("registration = ?", input.Registration).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Un véhicule avec cette immatriculation existe déjà"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
	}

	vehicle.VehicleModel = input.Model
	vehicle.Year = input.Year
	vehicle.Registration = input.Registration
	vehicle.Type = input.Type
	vehicle.Fuel = input.Fuel
	if input.Status != "" {
		vehicle.Status = input.Status
	}
	vehicle.ImageURL = input.ImageURL
	vehicle.LastMaintenance = parseDate(input.LastMaintenance)

	if err := config.DB.Save(&vehicle).Error; err != nil {
		slog.Error("Failed to update vehicle", "error", err, "vehicle_id", vehicle.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicleHandler soft-deletes a vehicle.
func DeleteVehicleHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	if result := config.DB.Delete(&models.Vehicle{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
