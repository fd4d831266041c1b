package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
)

func AuthRoute(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", controller.Register())
		authGroup.POST("/login", controller.Login())
	}
}
