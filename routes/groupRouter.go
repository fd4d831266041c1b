package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/middleware"
)

func GroupRoute(router *gin.Engine) {
	groupGroup := router.Group("/api/groups")
	groupGroup.Use(middleware.Authentication())
	{
		// Specific routes first so "/my" is not captured by "/:id".
		groupGroup.GET("/my", controller.GetMyGroups())
		groupGroup.GET("", controller.GetAllGroups())
		groupGroup.POST("", controller.CreateGroup())
		groupGroup.POST("/:id/join", controller.JoinGroup())
		groupGroup.POST("/:id/leave", controller.LeaveGroup())
		groupGroup.DELETE("/:id/members/:memberId", controller.RemoveGroupMember())
		groupGroup.PUT("/:id", controller.UpdateGroup())
		groupGroup.GET("/:id", controller.GetGroupDetails())
	}
}
