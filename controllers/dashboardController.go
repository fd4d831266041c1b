package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hello-world123pratik/Skillchat/models"
)

// GetUpcomingEvent returns the actor's next event, or null when the
// calendar is empty.
func GetUpcomingEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		opts := options.FindOne().SetSort(bson.M{"start": 1})
		filter := bson.M{
			"user":  actorID,
			"start": bson.M{"$gte": time.Now()},
		}

		var event models.Event
		err := eventCollection.FindOne(ctx, filter, opts).Decode(&event)
		if isNoDocuments(err) {
			c.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, event)
	}
}

// GetUnreadCount counts unread direct messages addressed to the actor.
func GetUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		count, err := messageCollection.CountDocuments(ctx, bson.M{
			"recipient": actorID,
			"read":      false,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// GetMessageStats buckets the actor's received messages per weekday for
// the dashboard chart.
func GetMessageStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{"recipient": actorID}},
			{"$project": bson.M{
				"day": bson.M{"$dateToString": bson.M{
					"format": "%a",
					"date":   "$createdAt",
				}},
			}},
			{"$group": bson.M{
				"_id":      "$day",
				"messages": bson.M{"$sum": 1},
			}},
		}

		cursor, err := messageCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer cursor.Close(ctx)

		var buckets []struct {
			Day      string `bson:"_id"`
			Messages int    `bson:"messages"`
		}
		if err := cursor.All(ctx, &buckets); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		stats := []gin.H{}
		for _, b := range buckets {
			stats = append(stats, gin.H{"date": b.Day, "messages": b.Messages})
		}
		c.JSON(http.StatusOK, stats)
	}
}
