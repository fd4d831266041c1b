package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A message carries either Group (group chat) or Recipient (direct chat).
// Content may be empty when a file is attached.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Recipient primitive.ObjectID `bson:"recipient,omitempty" json:"recipient,omitempty"`
	Group     primitive.ObjectID `bson:"group,omitempty" json:"group,omitempty"`

	Content          string `bson:"content,omitempty" json:"content,omitempty"`
	FileURL          string `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	OriginalFileName string `bson:"originalFileName,omitempty" json:"originalFileName,omitempty"`

	Read bool `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
