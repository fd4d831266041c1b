package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/middleware"
)

func MessageRoute(router *gin.Engine) {
	messageGroup := router.Group("/api/messages")
	messageGroup.Use(middleware.Authentication())
	{
		// Specific routes must come before the dynamic ones.
		messageGroup.GET("/conversations", controller.GetConversations())
		messageGroup.GET("/unread-count", controller.GetUnreadCount())
		messageGroup.GET("/stats", controller.GetMessageStats())
		messageGroup.GET("/direct/:userId", controller.GetDirectMessages())
		messageGroup.POST("/direct", controller.SendDirectMessage())

		messageGroup.POST("", controller.SendMessage())
		messageGroup.GET("/:groupId", controller.GetGroupMessages())
		messageGroup.DELETE("/:id", controller.DeleteMessage())
	}
}
