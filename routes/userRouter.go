package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/middleware"
)

func UserRoute(router *gin.Engine) {
	userGroup := router.Group("/api/users")
	userGroup.Use(middleware.Authentication())
	{
		userGroup.GET("", controller.GetUsers())
		userGroup.GET("/:id", controller.GetUserByID())
	}
}
