package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/models"
)

var conversationCollection *mongo.Collection

func InitConversationController() {
	conversationCollection = database.GetCollection("conversations")
}

type startConversationRequest struct {
	UserID string `json:"userId"`
}

func conversationJSON(conversation models.Conversation, users map[primitive.ObjectID]UserSummary) gin.H {
	members := []UserSummary{}
	for _, id := range conversation.Members {
		if s, ok := users[id]; ok {
			members = append(members, s)
		}
	}
	return gin.H{
		"_id":       conversation.ID,
		"members":   members,
		"isGroup":   conversation.IsGroup,
		"name":      conversation.Name,
		"createdAt": conversation.CreatedAt,
		"updatedAt": conversation.UpdatedAt,
	}
}

// CreateOrGetConversation finds the 1:1 conversation between the actor
// and another user, creating it lazily on first contact. The member-set
// lookup is order-independent, so A→B and B→A resolve to the same
// document and repeat calls never create duplicates.
func CreateOrGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req startConversationRequest
		if err := c.BindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}

		otherID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if otherID == actorID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot create conversation with yourself"})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"_id": otherID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		filter := bson.M{
			"isGroup": false,
			"members": bson.M{"$all": []primitive.ObjectID{actorID, otherID}, "$size": 2},
		}

		var conversation models.Conversation
		err = conversationCollection.FindOne(ctx, filter).Decode(&conversation)
		if err != nil && !isNoDocuments(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if isNoDocuments(err) {
			now := time.Now()
			conversation = models.Conversation{
				ID:        primitive.NewObjectID(),
				Members:   []primitive.ObjectID{actorID, otherID},
				IsGroup:   false,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := conversationCollection.InsertOne(ctx, conversation); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
				return
			}
		}

		users, err := fetchUserSummaries(ctx, conversation.Members)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, conversationJSON(conversation, users))
	}
}

// GetUserConversations lists the actor's 1:1 conversations newest-updated
// first. Stale entries (deleted members, wrong member counts) are
// filtered defensively after fetch rather than prevented at write time.
func GetUserConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		opts := options.Find().SetSort(bson.M{"updatedAt": -1})
		cursor, err := conversationCollection.Find(ctx,
			bson.M{"members": actorID, "isGroup": false}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		defer cursor.Close(ctx)

		var conversations []models.Conversation
		if err := cursor.All(ctx, &conversations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		users, err := fetchConversationMembers(ctx, conversations)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		valid := []gin.H{}
		for _, conversation := range conversations {
			if !isValidConversation(conversation, actorID, users) {
				continue
			}
			valid = append(valid, conversationJSON(conversation, users))
		}

		c.JSON(http.StatusOK, valid)
	}
}

func fetchConversationMembers(ctx context.Context, conversations []models.Conversation) (map[primitive.ObjectID]UserSummary, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, conversation := range conversations {
		for _, id := range conversation.Members {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	return fetchUserSummaries(ctx, ids)
}

// isValidConversation drops records with the wrong member count, deleted
// members, or no member other than the actor.
func isValidConversation(conversation models.Conversation, actorID primitive.ObjectID, users map[primitive.ObjectID]UserSummary) bool {
	if len(conversation.Members) != 2 {
		return false
	}
	hasOther := false
	for _, id := range conversation.Members {
		if _, ok := users[id]; !ok {
			return false
		}
		if id != actorID {
			hasOther = true
		}
	}
	return hasOther
}

// DeleteConversation removes a conversation only when the actor is a
// member; non-members see "not found".
func DeleteConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		conversationID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Conversation not found or unauthorized"})
			return
		}

		err = conversationCollection.FindOneAndDelete(ctx, bson.M{
			"_id":     conversationID,
			"members": actorID,
		}).Err()
		if isNoDocuments(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Conversation not found or unauthorized"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted successfully"})
	}
}
