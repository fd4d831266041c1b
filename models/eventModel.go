package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Start       time.Time          `bson:"start" json:"start" validate:"required"`
	End         time.Time          `bson:"end" json:"end" validate:"required"`

	// Owning user. Every mutation checks this against the actor.
	User primitive.ObjectID `bson:"user" json:"user"`

	// Set only for group calendar events.
	GroupID primitive.ObjectID `bson:"groupId,omitempty" json:"groupId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
