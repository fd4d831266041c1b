package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hello-world123pratik/Skillchat/models"
)

// GetUsers lists every user except the actor. Records with an empty name
// or email (malformed seed data) are filtered out.
func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		filter := bson.M{
			"_id":   bson.M{"$ne": actorID},
			"name":  bson.M{"$exists": true, "$ne": ""},
			"email": bson.M{"$exists": true, "$ne": ""},
		}

		cursor, err := userCollection.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		resp := []gin.H{}
		for _, u := range users {
			resp = append(resp, gin.H{"_id": u.ID, "name": u.Name, "email": u.Email})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetUserByID returns a single user's public-safe fields. A malformed id
// is reported the same as a missing user.
func GetUserByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var user models.User
		err = userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if isNoDocuments(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"_id":          user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"profileImage": user.ProfileImage,
		})
	}
}
