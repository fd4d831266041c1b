package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Password  string             `bson:"password" json:"-" validate:"required,min=6"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	Experience string            `bson:"experience,omitempty" json:"experience,omitempty"`
	Skills    []string           `bson:"skills" json:"skills"`

	// Paths under /uploads, or absolute Cloudinary URLs.
	ProfileImage string `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Resume       string `bson:"resume,omitempty" json:"resume,omitempty"`

	Groups   []primitive.ObjectID `bson:"groups,omitempty" json:"groups,omitempty"`
	LastSeen time.Time            `bson:"lastSeen" json:"lastSeen"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
