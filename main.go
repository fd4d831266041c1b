package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hello-world123pratik/Skillchat/controllers"
	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/helpers"
	"github.com/hello-world123pratik/Skillchat/routes"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️ [main] No .env file found, reading environment directly")
	}

	database.InitDB()

	controllers.InitAuthController()
	controllers.InitGroupController()
	controllers.InitEventController()
	controllers.InitMessageController()
	controllers.InitConversationController()

	if err := helpers.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ [main] Could not create upload directory: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	allowOrigins := []string{"http://localhost:5173"}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		allowOrigins = append(allowOrigins, frontend)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Static("/uploads", helpers.UploadDir())

	routes.AuthRoute(router)
	routes.ProfileRoute(router)
	routes.GroupRoute(router)
	routes.EventRoute(router)
	routes.MessageRoute(router)
	routes.ConversationRoute(router)
	routes.UserRoute(router)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "SkillSync Backend is running!")
	})

	// Optionally serve a pre-built SPA bundle with an index fallback for
	// client-side routes.
	if dist := os.Getenv("CLIENT_DIST"); dist != "" {
		router.Static("/assets", filepath.Join(dist, "assets"))
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
				return
			}
			c.File(filepath.Join(dist, "index.html"))
		})
	}

	log.Println("🚀 [main] Server running on port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ [main] Server failed: %v", err)
	}
}
