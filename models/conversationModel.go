package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A 1:1 conversation holds exactly two member ids and is looked up by
// member-set equality, so A→B and B→A resolve to the same document.
type Conversation struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Members   []primitive.ObjectID `bson:"members" json:"members" validate:"required,min=2"`
	IsGroup   bool                 `bson:"isGroup" json:"isGroup"`
	Name      string               `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
