package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/helpers"
	"github.com/hello-world123pratik/Skillchat/models"
)

var messageCollection *mongo.Collection

func InitMessageController() {
	messageCollection = database.GetCollection("messages")
}

type directMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

func messageJSON(message models.Message, users map[primitive.ObjectID]UserSummary) gin.H {
	resp := gin.H{
		"_id":       message.ID,
		"content":   message.Content,
		"read":      message.Read,
		"createdAt": message.CreatedAt,
		"updatedAt": message.UpdatedAt,
	}

	if sender, ok := users[message.Sender]; ok {
		resp["sender"] = gin.H{"_id": sender.ID, "name": sender.Name, "email": sender.Email}
	} else {
		resp["sender"] = message.Sender
	}

	if !message.Group.IsZero() {
		resp["group"] = message.Group
	}
	if !message.Recipient.IsZero() {
		if recipient, ok := users[message.Recipient]; ok {
			resp["recipient"] = gin.H{"_id": recipient.ID, "name": recipient.Name}
		} else {
			resp["recipient"] = message.Recipient
		}
	}
	if message.FileURL != "" {
		resp["fileUrl"] = message.FileURL
		resp["originalFileName"] = message.OriginalFileName
	}
	return resp
}

func populateMessages(ctx context.Context, messages []models.Message) ([]gin.H, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, m := range messages {
		idSet[m.Sender] = struct{}{}
		if !m.Recipient.IsZero() {
			idSet[m.Recipient] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := fetchUserSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := []gin.H{}
	for _, m := range messages {
		resp = append(resp, messageJSON(m, users))
	}
	return resp, nil
}

// SendMessage posts a group message with an optional file attachment.
// Sender membership is not checked: group chats are open to anyone who
// can resolve the group id.
func SendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No user attached"})
			return
		}

		groupID, err := primitive.ObjectIDFromHex(c.PostForm("groupId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group ID and content are required"})
			return
		}

		content := strings.TrimSpace(c.PostForm("content"))

		now := time.Now()
		message := models.Message{
			ID:        primitive.NewObjectID(),
			Sender:    actor.ID,
			Group:     groupID,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if file, header, err := c.Request.FormFile("file"); err == nil {
			defer file.Close()
			stored, err := helpers.SaveChatFile(file, header)
			if err == helpers.ErrFileTooLarge {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err != nil {
				log.Println("❌ [SendMessage] attachment upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
				return
			}
			message.FileURL = stored
			message.OriginalFileName = header.Filename
		}

		if message.Content == "" && message.FileURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group ID and content are required"})
			return
		}

		if _, err := messageCollection.InsertOne(ctx, message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		users := map[primitive.ObjectID]UserSummary{
			actor.ID: {ID: actor.ID, Name: actor.Name, Email: actor.Email},
		}
		c.JSON(http.StatusCreated, messageJSON(message, users))
	}
}

// GetGroupMessages lists a group chat oldest-first with senders populated.
func GetGroupMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}

		opts := options.Find().SetSort(bson.M{"createdAt": 1})
		cursor, err := messageCollection.Find(ctx, bson.M{"group": groupID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		defer cursor.Close(ctx)

		var messages []models.Message
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}

		resp, err := populateMessages(ctx, messages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetConversations aggregates the last message per group chat the actor
// has written to, joined with the group's name.
func GetConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{
				"sender": actorID,
				"group":  bson.M{"$exists": true},
			}},
			{"$sort": bson.M{"createdAt": 1}},
			{"$group": bson.M{
				"_id":         "$group",
				"lastMessage": bson.M{"$last": "$$ROOT"},
			}},
			{"$lookup": bson.M{
				"from":         "groups",
				"localField":   "_id",
				"foreignField": "_id",
				"as":           "group",
			}},
			{"$unwind": "$group"},
			{"$project": bson.M{
				"group": bson.M{"_id": 1, "name": 1},
				"lastMessage": bson.M{
					"content":   1,
					"createdAt": 1,
				},
			}},
		}

		cursor, err := messageCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
			return
		}
		defer cursor.Close(ctx)

		conversations := []bson.M{}
		if err := cursor.All(ctx, &conversations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
			return
		}

		c.JSON(http.StatusOK, conversations)
	}
}

// SendDirectMessage posts a 1:1 message.
func SendDirectMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req directMessageRequest
		if err := c.BindJSON(&req); err != nil || req.RecipientID == "" || strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient ID and content are required"})
			return
		}

		recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient ID and content are required"})
			return
		}

		now := time.Now()
		message := models.Message{
			ID:        primitive.NewObjectID(),
			Sender:    actor.ID,
			Recipient: recipientID,
			Content:   strings.TrimSpace(req.Content),
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := messageCollection.InsertOne(ctx, message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send direct message"})
			return
		}

		// Keep the paired conversation fresh so it sorts to the top.
		_, err = database.GetCollection("conversations").UpdateOne(ctx,
			bson.M{
				"isGroup": false,
				"members": bson.M{"$all": []primitive.ObjectID{actor.ID, recipientID}, "$size": 2},
			},
			bson.M{"$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			log.Println("⚠️ [SendDirectMessage] conversation touch failed:", err)
		}

		users := map[primitive.ObjectID]UserSummary{
			actor.ID: {ID: actor.ID, Name: actor.Name, Email: actor.Email},
		}
		c.JSON(http.StatusCreated, messageJSON(message, users))
	}
}

// GetDirectMessages lists both directions between the actor and another
// user, oldest-first.
func GetDirectMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		filter := bson.M{"$or": []bson.M{
			{"sender": actorID, "recipient": otherID},
			{"sender": otherID, "recipient": actorID},
		}}

		opts := options.Find().SetSort(bson.M{"createdAt": 1})
		cursor, err := messageCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch direct messages"})
			return
		}
		defer cursor.Close(ctx)

		var messages []models.Message
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch direct messages"})
			return
		}

		resp, err := populateMessages(ctx, messages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch direct messages"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DeleteMessage is sender-only.
func DeleteMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		var message models.Message
		err = messageCollection.FindOne(ctx, bson.M{"_id": messageID}).Decode(&message)
		if isNoDocuments(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}

		if message.Sender != actorID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own messages"})
			return
		}

		if _, err := messageCollection.DeleteOne(ctx, bson.M{"_id": messageID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	}
}
