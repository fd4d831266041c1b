package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Members is kept as a set at the application layer: join uses $addToSet,
// leave and member removal use $pull.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string               `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
