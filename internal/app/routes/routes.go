package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sispe-project/sispe/internal/app/controllers"
	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	observationController *controllers.ObservationController,
	guardianController *controllers.GuardianController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Everything else requires a session
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		users := authenticated.Group("/users")
		{
			users.DELETE("/:username", userController.DeleteUser)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.POST("", userController.CreateUser)
				usersAdmin.GET("", userController.ListUsers)
				usersAdmin.GET("/:username/students", studentController.ListStudentsByOwner)
			}
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudent)
			students.GET("/:id/observations", observationController.GetHistory)
			students.GET("/:id/observations/latest", observationController.GetLatest)
			students.GET("/:id/guardians", guardianController.ListGuardians)
			students.GET("/:id/report", reportController.DownloadReport)

			studentsClinician := students.Group("")
			studentsClinician.Use(authMiddleware.RoleRequired(models.RoleClinician))
			{
				studentsClinician.POST("", studentController.RegisterStudent)
				studentsClinician.PUT("/:id", studentController.UpdateStudent)
				studentsClinician.DELETE("/:id", studentController.DeleteStudent)
				studentsClinician.POST("/:id/observations", observationController.AppendObservation)
				studentsClinician.POST("/:id/report", reportController.ExportReport)
			}

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdmin.POST("/:id/guardians", guardianController.LinkGuardian)
				studentsAdmin.DELETE("/:id/guardians/:username", guardianController.UnlinkGuardian)
			}
		}
	}
}
