package utils

import (
	"context"
	"log"
	"os"
	"time"

	"linkstash/model"
	"linkstash/services"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the process-wide MongoDB client. Nil when the file
// backend is in use.
var MongoClient *mongo.Client

// InitMongoClient connects to MongoDB. The connect-and-ping step goes
// through the storage retry policy so a briefly unavailable database
// does not kill startup.
func InitMongoClient() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MongoDB URI is not set")
	}

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetMaxPoolSize(GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100)).
		SetMinPoolSize(GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10)).
		SetMaxConnIdleTime(GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second))

	policy := services.DefaultRetryPolicy()
	err := policy.Do(context.Background(), func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			return model.NewStorageError("mongo connect", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return model.NewStorageError("mongo ping", err)
		}

		MongoClient = client
		return nil
	})
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
}
