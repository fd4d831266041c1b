package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

func InitDB() {
	mongoURI := os.Getenv("MONGODB_URL")
	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URL not found in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(30 * time.Second).
		SetConnectTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("❌ [InitDB] Error connecting to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ [InitDB] MongoDB ping failed: %v", err)
	}

	log.Println("✅ [InitDB] MongoDB connected successfully")
	Client = client
}

// DBName returns the database name, defaulting to "skillsync".
func DBName() string {
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "skillsync"
	}
	return name
}

// GetCollection returns a collection from the configured database.
func GetCollection(collectionName string) *mongo.Collection {
	if Client == nil {
		log.Fatal("❌ [GetCollection] MongoDB Client is not initialized. Call InitDB() first.")
	}
	return Client.Database(DBName()).Collection(collectionName)
}
