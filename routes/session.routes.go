package routes

import (
	"github.com/gin-gonic/gin"

	"healthbuddy/internal/controllers"
)

func RegisterSessionRoutes(api *gin.RouterGroup, sessionController *controllers.SessionController) {
	sessionRoutes := api.Group("/sessions")
	{
		sessionRoutes.POST("", sessionController.CreateSession)
		sessionRoutes.GET("/active", sessionController.GetActiveSession)
		sessionRoutes.POST("/clear", sessionController.ClearSession)
	}
}
