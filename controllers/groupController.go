package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hello-world123pratik/Skillchat/database"
	"github.com/hello-world123pratik/Skillchat/models"
)

var groupCollection *mongo.Collection

func InitGroupController() {
	groupCollection = database.GetCollection("groups")
}

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// memberSummary is the populated member shape ({_id, name}, plus email in
// the detail view).
type memberSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

func groupJSON(ctx context.Context, group models.Group, includeEmail bool) (gin.H, error) {
	summaries, err := fetchUserSummaries(ctx, group.Members)
	if err != nil {
		return nil, err
	}

	members := []memberSummary{}
	for _, id := range group.Members {
		s, ok := summaries[id]
		if !ok {
			continue // deleted users are filtered out of member lists
		}
		m := memberSummary{ID: s.ID, Name: s.Name}
		if includeEmail {
			m.Email = s.Email
		}
		members = append(members, m)
	}

	return gin.H{
		"_id":         group.ID,
		"name":        group.Name,
		"description": group.Description,
		"createdBy":   group.CreatedBy,
		"members":     members,
		"createdAt":   group.CreatedAt,
		"updatedAt":   group.UpdatedAt,
	}, nil
}

func findGroup(ctx context.Context, c *gin.Context, param string) (models.Group, bool) {
	var group models.Group

	groupID, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
		return group, false
	}

	err = groupCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if isNoDocuments(err) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
		return group, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return group, false
	}
	return group, true
}

// CreateGroup makes the actor the creator and sole initial member.
func CreateGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		var req groupRequest
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Group name is required"})
			return
		}

		now := time.Now()
		group := models.Group{
			ID:          primitive.NewObjectID(),
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			CreatedBy:   actorID,
			Members:     []primitive.ObjectID{actorID},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := groupCollection.InsertOne(ctx, group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create group"})
			return
		}

		resp, err := groupJSON(ctx, group, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create group"})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// JoinGroup appends the actor only if absent; joining twice is a no-op.
func JoinGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		group, ok := findGroup(ctx, c, "id")
		if !ok {
			return
		}

		_, err := groupCollection.UpdateOne(ctx,
			bson.M{"_id": group.ID},
			bson.M{
				"$addToSet": bson.M{"members": actorID},
				"$set":      bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join group"})
			return
		}

		if err := groupCollection.FindOne(ctx, bson.M{"_id": group.ID}).Decode(&group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join group"})
			return
		}

		resp, err := groupJSON(ctx, group, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined group", "group": resp})
	}
}

// LeaveGroup removes the actor unconditionally; leaving a group the actor
// is not in is a no-op, not an error.
func LeaveGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		group, ok := findGroup(ctx, c, "id")
		if !ok {
			return
		}

		_, err := groupCollection.UpdateOne(ctx,
			bson.M{"_id": group.ID},
			bson.M{
				"$pull": bson.M{"members": actorID},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to leave group"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Left group successfully"})
	}
}

// RemoveGroupMember is creator-only.
func RemoveGroupMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		group, ok := findGroup(ctx, c, "id")
		if !ok {
			return
		}

		if group.CreatedBy != actorID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
			return
		}

		memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid member id"})
			return
		}

		_, err = groupCollection.UpdateOne(ctx,
			bson.M{"_id": group.ID},
			bson.M{
				"$pull": bson.M{"members": memberID},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error removing member"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
	}
}

// UpdateGroup is creator-only with partial-update semantics.
func UpdateGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		group, ok := findGroup(ctx, c, "id")
		if !ok {
			return
		}

		if group.CreatedBy != actorID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
			return
		}

		var req groupRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		updateObj := bson.M{"updatedAt": time.Now()}
		if name := strings.TrimSpace(req.Name); name != "" {
			updateObj["name"] = name
		}
		if description := strings.TrimSpace(req.Description); description != "" {
			updateObj["description"] = description
		}

		_, err := groupCollection.UpdateOne(ctx, bson.M{"_id": group.ID}, bson.M{"$set": updateObj})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update group"})
			return
		}

		if err := groupCollection.FindOne(ctx, bson.M{"_id": group.ID}).Decode(&group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update group"})
			return
		}

		resp, err := groupJSON(ctx, group, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Group updated", "group": resp})
	}
}

func listGroups(c *gin.Context, filter bson.M) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := groupCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups"})
		return
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups"})
		return
	}

	resp := []gin.H{}
	for _, group := range groups {
		g, err := groupJSON(ctx, group, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups"})
			return
		}
		resp = append(resp, g)
	}

	c.JSON(http.StatusOK, resp)
}

// GetMyGroups lists groups the actor is a member of.
func GetMyGroups() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		listGroups(c, bson.M{"members": actorID})
	}
}

// GetAllGroups lists every group for browse mode, membership aside.
func GetAllGroups() gin.HandlerFunc {
	return func(c *gin.Context) {
		listGroups(c, bson.M{})
	}
}

// GetGroupDetails includes member emails and the creator summary.
func GetGroupDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx()
		defer cancel()

		group, ok := findGroup(ctx, c, "id")
		if !ok {
			return
		}

		resp, err := groupJSON(ctx, group, true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving group details"})
			return
		}

		creators, err := fetchUserSummaries(ctx, []primitive.ObjectID{group.CreatedBy})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving group details"})
			return
		}
		if creator, found := creators[group.CreatedBy]; found {
			resp["createdBy"] = gin.H{"_id": creator.ID, "name": creator.Name}
		}

		c.JSON(http.StatusOK, resp)
	}
}
