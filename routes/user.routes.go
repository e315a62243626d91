package routes

import (
	"github.com/gin-gonic/gin"

	"healthbuddy/internal/controllers"
)

func RegisterUserRoutes(api *gin.RouterGroup, userController *controllers.UserController) {
	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", userController.Register)
		userRoutes.POST("/login", userController.Login)
		userRoutes.GET("/:userId", userController.GetUserByID)
		userRoutes.PUT("/:userId/profile", userController.UpdateProfile)
	}
}
