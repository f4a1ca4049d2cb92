package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	itemsCollection := db.Collection("items")
	foldersCollection := db.Collection("folders")
	usersCollection := db.Collection("users")

	itemIndexes := []mongo.IndexModel{
		// Default listing: user's items by creation date
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_items_date").
				SetUnique(false),
		},
		// Trash view
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_trash", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_trash_date"),
		},
		// Starred view
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_starred", Value: 1},
			},
			Options: options.Index().
				SetName("user_starred"),
		},
		// Folder membership (item counts, folder views)
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "folder_id", Value: 1},
				{Key: "is_trash", Value: 1},
			},
			Options: options.Index().
				SetName("user_folder_items"),
		},
		// Category counts
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().
				SetName("user_categories"),
		},
	}

	folderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_folders_updated"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_pinned", Value: 1},
			},
			Options: options.Index().
				SetName("user_pinned_folders"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("user_email").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index").
				SetUnique(true),
		},
	}

	if _, err := itemsCollection.Indexes().CreateMany(ctx, itemIndexes); err != nil {
		return fmt.Errorf("failed to create item indexes: %w", err)
	}
	if _, err := foldersCollection.Indexes().CreateMany(ctx, folderIndexes); err != nil {
		return fmt.Errorf("failed to create folder indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	log.Println("Database indexes created")
	return nil
}
