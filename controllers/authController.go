package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/helpers"
	"github.com/hello-world123pratik/Skillchat/models"
)

var userCollection *mongo.Collection

func InitAuthController() {
	userCollection = database.GetCollection("users")
}

var validate = validator.New()

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. Duplicate emails are a 400 conflict; the
// password is stored only as a bcrypt hash.
func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		var req registerRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Fields required"})
			return
		}

		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Fields required"})
			return
		}

		email := NormalizeEmail(req.Email)

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("❌ [Register] Error checking email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User exists"})
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Password:  hash,
			Skills:    []string{},
			LastSeen:  now,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			log.Println("❌ [Register] InsertOne error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Registered"})
	}
}

// Login verifies credentials and issues a bearer token. A missing user
// and a wrong password produce the same response.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		var req loginRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Fields required"})
			return
		}

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"email": NormalizeEmail(req.Email)}).Decode(&user)
		if err != nil && !isNoDocuments(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if err != nil || !VerifyPassword(user.Password, req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid creds"})
			return
		}

		token, err := helpers.GenerateToken(user.ID.Hex())
		if err != nil {
			log.Println("❌ [Login] Token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		_, err = userCollection.UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"lastSeen": time.Now()}},
		)
		if err != nil {
			log.Println("⚠️ [Login] lastSeen update failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged in", "token": token})
	}
}
