package routes

import (
	"github.com/gin-gonic/gin"

	"healthbuddy/internal/controllers"
)

func RegisterReadingRoutes(api *gin.RouterGroup, readingController *controllers.ReadingController) {
	readingRoutes := api.Group("/blood-pressure")
	{
		readingRoutes.POST("", readingController.AddReading)
		readingRoutes.GET("/:userId", readingController.GetReadings)
		readingRoutes.DELETE("/:readingId", readingController.DeleteReading)
	}
}
