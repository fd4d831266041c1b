package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/models"
)

const dbTimeout = 10 * time.Second

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// currentUserID returns the authenticated actor's ObjectID. The auth
// middleware guarantees it is present on protected routes.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	uid, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(uid.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func currentUser(c *gin.Context) (models.User, bool) {
	u, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := u.(models.User)
	return user, ok
}

// UserSummary is the populated shape embedded in group, message and
// conversation responses.
type UserSummary struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Email        string             `json:"email,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

// fetchUserSummaries resolves user ids to summaries in a single query.
// Unknown ids are simply absent from the result map.
func fetchUserSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]UserSummary, error) {
	summaries := make(map[primitive.ObjectID]UserSummary)
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := database.GetCollection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		summaries[u.ID] = UserSummary{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			ProfileImage: u.ProfileImage,
		}
	}
	return summaries, nil
}

func isNoDocuments(err error) bool {
	return err == mongo.ErrNoDocuments
}
