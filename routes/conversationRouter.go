package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/middleware"
)

func ConversationRoute(router *gin.Engine) {
	conversationGroup := router.Group("/api/conversations")
	conversationGroup.Use(middleware.Authentication())
	{
		conversationGroup.POST("", controller.CreateOrGetConversation())
		conversationGroup.GET("", controller.GetUserConversations())
		conversationGroup.DELETE("/:id", controller.DeleteConversation())
	}
}
