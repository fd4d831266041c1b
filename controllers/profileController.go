package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hello-world123pratik/Skillchat/helpers"
	"github.com/hello-world123pratik/Skillchat/models"
)

// absoluteFileURL resolves a stored /uploads path against the request
// host. Cloudinary URLs are already absolute and pass through.
func absoluteFileURL(c *gin.Context, stored string) string {
	if stored == "" {
		return ""
	}
	if strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + stored
}

// NormalizeSkills accepts a comma-separated string or an already-split
// list and returns a trimmed list with empties dropped.
func NormalizeSkills(values []string) []string {
	skills := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return skills
}

func GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"_id":          user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"education":    user.Education,
			"experience":   user.Experience,
			"skills":       user.Skills,
			"profileImage": absoluteFileURL(c, user.ProfileImage),
			"resume":       absoluteFileURL(c, user.Resume),
		})
	}
}

// UpdateProfile merges only the provided fields; unset fields keep their
// previous value. Accepts up to one profileImage and one resume file.
func UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		updateObj := bson.M{}

		if name := strings.TrimSpace(c.PostForm("name")); name != "" {
			updateObj["name"] = name
		}
		if phone := strings.TrimSpace(c.PostForm("phone")); phone != "" {
			updateObj["phone"] = phone
		}
		if education := strings.TrimSpace(c.PostForm("education")); education != "" {
			updateObj["education"] = education
		}
		if experience := strings.TrimSpace(c.PostForm("experience")); experience != "" {
			updateObj["experience"] = experience
		}

		if email := NormalizeEmail(c.PostForm("email")); email != "" && email != user.Email {
			count, err := userCollection.CountDocuments(ctx, bson.M{"email": email})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
				return
			}
			updateObj["email"] = email
		}

		if rawSkills := c.PostFormArray("skills"); len(rawSkills) > 0 {
			updateObj["skills"] = NormalizeSkills(rawSkills)
		}

		if file, header, err := c.Request.FormFile("profileImage"); err == nil {
			defer file.Close()
			stored, err := helpers.SaveProfileFile(file, header, user.ID.Hex(), "profile")
			if err == helpers.ErrFileTooLarge {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			if err != nil {
				log.Println("❌ [UpdateProfile] profileImage upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			updateObj["profileImage"] = stored
		}

		if file, header, err := c.Request.FormFile("resume"); err == nil {
			defer file.Close()
			stored, err := helpers.SaveProfileFile(file, header, user.ID.Hex(), "resume")
			if err == helpers.ErrFileTooLarge {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			if err != nil {
				log.Println("❌ [UpdateProfile] resume upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			updateObj["resume"] = stored
		}

		updateObj["updatedAt"] = time.Now()

		_, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": updateObj})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		var updated models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated",
			"user": gin.H{
				"_id":          updated.ID,
				"name":         updated.Name,
				"email":        updated.Email,
				"phone":        updated.Phone,
				"education":    updated.Education,
				"experience":   updated.Experience,
				"skills":       updated.Skills,
				"profileImage": absoluteFileURL(c, updated.ProfileImage),
				"resume":       absoluteFileURL(c, updated.Resume),
			},
		})
	}
}

// GetUserProfileByID is the viewer-agnostic public profile: no email, no
// password.
func GetUserProfileByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var user models.User
		err = userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if isNoDocuments(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		name := user.Name
		if name == "" {
			name = "Unnamed User"
		}
		skills := user.Skills
		if skills == nil {
			skills = []string{}
		}
		groups := user.Groups
		if groups == nil {
			groups = []primitive.ObjectID{}
		}

		c.JSON(http.StatusOK, gin.H{
			"_id":          user.ID,
			"name":         name,
			"profileImage": absoluteFileURL(c, user.ProfileImage),
			"education":    user.Education,
			"experience":   user.Experience,
			"skills":       skills,
			"groups":       groups,
			"createdAt":    user.CreatedAt,
		})
	}
}
