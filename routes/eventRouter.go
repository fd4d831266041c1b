package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/middleware"
)

func EventRoute(router *gin.Engine) {
	eventGroup := router.Group("/api/events")
	eventGroup.Use(middleware.Authentication())
	{
		eventGroup.GET("", controller.GetEvents())
		eventGroup.POST("", controller.CreateEvent())

		eventGroup.GET("/upcoming", controller.GetUpcomingEvent())
		eventGroup.GET("/group/:groupId", controller.GetEventsByGroup())
		eventGroup.POST("/group/:groupId", controller.CreateGroupEvent())

		eventGroup.GET("/:id", controller.GetEventByID())
		eventGroup.PUT("/:id", controller.UpdateEvent())
		eventGroup.DELETE("/:id", controller.DeleteEvent())
	}
}
