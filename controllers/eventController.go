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

var eventCollection *mongo.Collection

func InitEventController() {
	eventCollection = database.GetCollection("events")
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
}

// findOwnedEvent resolves the :id event and enforces the ownership rule:
// a missing event and someone else's event are both "Event not found",
// so callers cannot distinguish absence from no-access.
func findOwnedEvent(ctx context.Context, c *gin.Context, actorID primitive.ObjectID) (models.Event, bool) {
	var event models.Event

	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return event, false
	}

	err = eventCollection.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event)
	if err != nil && !isNoDocuments(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get event"})
		return event, false
	}
	if err != nil || event.User != actorID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return event, false
	}
	return event, true
}

func insertEvent(c *gin.Context, actorID, groupID primitive.ObjectID) {
	ctx, cancel := dbCtx()
	defer cancel()

	var req createEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Title == "" || req.Start.IsZero() || req.End.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, start and end are required"})
		return
	}

	now := time.Now()
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		User:        actorID,
		GroupID:     groupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := eventCollection.InsertOne(ctx, event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents lists the actor's own calendar.
func GetEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		cursor, err := eventCollection.Find(ctx, bson.M{"user": actorID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
			return
		}
		defer cursor.Close(ctx)

		events := []models.Event{}
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
			return
		}

		c.JSON(http.StatusOK, events)
	}
}

func CreateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		insertEvent(c, actorID, primitive.NilObjectID)
	}
}

func GetEventByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		event, ok := findOwnedEvent(ctx, c, actorID)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// UpdateEvent is owner-only with partial-update semantics.
func UpdateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		event, ok := findOwnedEvent(ctx, c, actorID)
		if !ok {
			return
		}

		var req updateEventRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		updateObj := bson.M{"updatedAt": time.Now()}
		if req.Title != nil && *req.Title != "" {
			updateObj["title"] = *req.Title
		}
		if req.Description != nil {
			updateObj["description"] = *req.Description
		}
		if req.Start != nil && !req.Start.IsZero() {
			updateObj["start"] = *req.Start
		}
		if req.End != nil && !req.End.IsZero() {
			updateObj["end"] = *req.End
		}

		_, err := eventCollection.UpdateOne(ctx, bson.M{"_id": event.ID}, bson.M{"$set": updateObj})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update event"})
			return
		}

		if err := eventCollection.FindOne(ctx, bson.M{"_id": event.ID}).Decode(&event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update event"})
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func DeleteEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		event, ok := findOwnedEvent(ctx, c, actorID)
		if !ok {
			return
		}

		if _, err := eventCollection.DeleteOne(ctx, bson.M{"_id": event.ID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
	}
}

// GetEventsByGroup lists a group's calendar sorted by start time. No
// membership check: group calendars are browsable by anyone who can
// resolve the group id.
func GetEventsByGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
			return
		}

		opts := options.Find().SetSort(bson.M{"start": 1})
		cursor, err := eventCollection.Find(ctx, bson.M{"groupId": groupID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch group events"})
			return
		}
		defer cursor.Close(ctx)

		events := []models.Event{}
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch group events"})
			return
		}

		c.JSON(http.StatusOK, events)
	}
}

func CreateGroupEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
			return
		}

		insertEvent(c, actorID, groupID)
	}
}
