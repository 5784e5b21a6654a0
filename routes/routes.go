package routes

import (
	"github.com/gin-gonic/gin"

	"gradeguard/controllers"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/simulate-exam", controllers.RunSimulationSeed)
		api.GET("/audit-queue", controllers.GetAuditQueue)
		api.POST("/resolve/:id", controllers.ResolveAnomaly)
		api.POST("/upload-sheet", controllers.UploadSheet)
		api.GET("/dashboard", controllers.GetDashboard)
	}
}
