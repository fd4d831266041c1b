package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/middleware"
)

func ProfileRoute(router *gin.Engine) {
	profileGroup := router.Group("/api/profile")
	profileGroup.Use(middleware.Authentication())
	{
		profileGroup.GET("", controller.GetProfile())
		profileGroup.PUT("", controller.UpdateProfile())
		profileGroup.GET("/:userId", controller.GetUserProfileByID())
	}
}
