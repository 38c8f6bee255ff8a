// planning-auto/internal/routes/api_routes.go
package routes

import (
	"github.com/UniversMood/planning-auto/internal/handlers"
	"github.com/UniversMood/planning-auto/internal/middleware"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
// Администратор проходит любую проверку роли.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- ПРОФИЛЬ ---
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
			profile.POST("/password", handlers.ChangePasswordHandler)
			profile.POST("/photo", handlers.UploadPhotoHandler)
		}

		// --- УВЕДОМЛЕНИЯ ---
		notifications := apiGroup.Group("/notifications")
		{
			notifications.GET("", handlers.ListNotificationsHandler)
			notifications.GET("/ws", handlers.NotificationWSEndpoint)
			notifications.PUT("/:id/read", handlers.MarkNotificationReadHandler)
			notifications.PUT("/read-all", handlers.MarkAllNotificationsReadHandler)
			notifications.POST("", middleware.RoleMiddleware(models.RoleAdmin), handlers.CreateNotificationHandler)
		}

		// --- УЧЕНИКИ ---
		students := apiGroup.Group("/students")
		students.Use(middleware.RoleMiddleware(models.RoleInstructor))
		{
			students.GET("", handlers.ListStudentsHandler)
			students.GET("/:id", handlers.GetStudentHandler)
			students.POST("", middleware.RoleMiddleware(models.RoleAdmin), handlers.CreateStudentHandler)
			students.PUT("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.UpdateStudentHandler)
			students.PUT("/:id/progress", handlers.UpdateStudentProgressHandler)
			students.DELETE("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.DeleteStudentHandler)
		}

		// --- ИНСТРУКТОРЫ ---
		instructors := apiGroup.Group("/instructors")
		{
			instructors.GET("", handlers.ListInstructorsHandler)
			instructors.GET("/:id", handlers.GetInstructorHandler)
			instructors.POST("", middleware.RoleMiddleware(models.RoleAdmin), handlers.CreateInstructorHandler)
			instructors.PUT("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.UpdateInstructorHandler)
			instructors.DELETE("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.DeleteInstructorHandler)
		}

		// --- АВТОМОБИЛИ ---
		vehicles := apiGroup.Group("/vehicles")
		{
			vehicles.GET("", handlers.ListVehiclesHandler)
			vehicles.GET("/:id", handlers.GetVehicleHandler)
			vehicles.POST("", middleware.RoleMiddleware(models.RoleAdmin), handlers.CreateVehicleHandler)
			vehicles.PUT("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.UpdateVehicleHandler)
			vehicles.DELETE("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.DeleteVehicleHandler)
		}

		// --- ЗАНЯТИЯ ---
		lessons := apiGroup.Group("/lessons")
		{
			lessons.GET("", handlers.ListLessonsHandler)
			lessons.GET("/:id", handlers.GetLessonHandler)
			lessons.POST("", middleware.RoleMiddleware(models.RoleInstructor), handlers.CreateLessonHandler)
			lessons.PUT("/:id", middleware.RoleMiddleware(models.RoleInstructor), handlers.UpdateLessonHandler)
			lessons.PUT("/:id/cancel", middleware.RoleMiddleware(models.RoleInstructor), handlers.CancelLessonHandler)
			lessons.PUT("/:id/complete", middleware.RoleMiddleware(models.RoleInstructor), handlers.CompleteLessonHandler)
		}

		// --- РАСПИСАНИЕ ---
		schedule := apiGroup.Group("/schedule")
		{
			schedule.GET("/week", handlers.WeekScheduleHandler)
			schedule.GET("/suggest", middleware.RoleMiddleware(models.RoleInstructor), handlers.SuggestScheduleHandler)
		}

		// --- ПАНЕЛИ ---
		dashboard := apiGroup.Group("/dashboard")
		{
			dashboard.GET("/admin", middleware.RoleMiddleware(models.RoleAdmin), handlers.AdminDashboardHandler)
			dashboard.GET("/instructor", middleware.RoleMiddleware(models.RoleInstructor), handlers.InstructorDashboardHandler)
			dashboard.GET("/student", middleware.RoleMiddleware(models.RoleStudent), handlers.StudentDashboardHandler)
		}

		// --- ЭКСПОРТ ---
		export := apiGroup.Group("/export")
		export.Use(middleware.RoleMiddleware(models.RoleInstructor))
		{
			export.GET("/schedule", handlers.ExportWeekScheduleHandler)
			export.GET("/students", handlers.ExportStudentsHandler)
		}
	}
}
